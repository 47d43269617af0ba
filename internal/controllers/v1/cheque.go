package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheqify/backend/internal/auth"
	"github.com/cheqify/backend/internal/httputil"
	"github.com/cheqify/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterChequeRoutes registers the routes for cheques with
// the RouterGroup that is passed.
//
// Reading and cashing is open to every authenticated user. Everything
// that edits or moves a cheque between partitions requires an admin.
func RegisterChequeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCheques)
		r.GET("", GetCheques)
		r.POST("", CreateCheque)
	}

	// Deleted partition
	{
		r.OPTIONS("/deleted/all", OptionsDeletedCheques)
		r.GET("/deleted/all", GetDeletedCheques)
	}

	// Partition transitions
	{
		r.OPTIONS("/restore/:id", OptionsChequeRestore)
		r.PUT("/restore/:id", auth.RequireAdmin(), RestoreCheque)
		r.OPTIONS("/permanent/:id", OptionsChequePermanent)
		r.DELETE("/permanent/:id", auth.RequireAdmin(), DeleteChequePermanently)
	}

	// Cheque with ID
	{
		r.OPTIONS("/:id", OptionsChequeDetail)
		r.GET("/:id", GetCheque)
		r.PATCH("/:id", auth.RequireAdmin(), UpdateCheque)
		r.DELETE("/:id", auth.RequireAdmin(), DeleteCheque)
		r.OPTIONS("/:id/cash", OptionsChequeCash)
		r.POST("/:id/cash", CashCheque)
	}
}

// UploadDir is the directory cheque images are stored in.
func UploadDir() string {
	dir, ok := os.LookupEnv("UPLOAD_DIR")
	if !ok {
		dir = filepath.Join("data", "uploads")
	}

	return dir
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cheques
// @Success		204
// @Router			/v1/cheques [options]
func OptionsCheques(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cheques
// @Success		204
// @Router			/v1/cheques/deleted/all [options]
func OptionsDeletedCheques(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cheques
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/{id} [options]
func OptionsChequeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var cheque models.Cheque
	err = models.DB.Unscoped().First(&cheque, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cheques
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/{id}/cash [options]
func OptionsChequeCash(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cheques
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/restore/{id} [options]
func OptionsChequeRestore(c *gin.Context) {
	httputil.OptionsPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cheques
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/permanent/{id} [options]
func OptionsChequePermanent(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// filteredCheques applies the query filter to a cheque partition and
// writes the list response. The base query decides which partition is
// visible.
func filteredCheques(c *gin.Context, q *gorm.DB) {
	var filter ChequeQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ChequeListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q = q.
		Order("date(cheque_date) DESC, datetime(created_at) DESC").
		Where(&model, queryFields...)

	if filter.Status != "" && filter.Status != StatusAll {
		if !filter.Status.Valid() {
			s := errChequeStatusInvalid.Error()
			c.JSON(http.StatusBadRequest, ChequeListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("status = ?", filter.Status)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where("(number LIKE ? OR bank LIKE ? OR beneficiary LIKE ?)", like, like, like)
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("cheque_date >= date(?)", time.Time(filter.FromDate))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("cheque_date <= date(?)", time.Time(filter.UntilDate))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 cheques and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var cheques []models.Cheque
	err := q.Find(&cheques).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeListResponse{
			Error: &s,
		})
		return
	}

	// The glob match runs over the database result, order is preserved
	if filter.Match != "" {
		matched := make([]models.Cheque, 0, len(cheques))
		for _, cheque := range cheques {
			if glob.Glob(filter.Match, cheque.Number) ||
				glob.Glob(filter.Match, cheque.Bank) ||
				glob.Glob(filter.Match, cheque.Beneficiary) {
				matched = append(matched, cheque)
			}
		}
		cheques = matched
	}

	data := make([]Cheque, 0)
	for _, cheque := range cheques {
		data = append(data, newCheque(c, cheque))
	}

	c.JSON(http.StatusOK, ChequeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get cheques
// @Description	Returns a list of active cheques
// @Tags			Cheques
// @Produce		json
// @Success		200	{object}	ChequeListResponse
// @Failure		400	{object}	ChequeListResponse
// @Failure		500	{object}	ChequeListResponse
// @Router			/v1/cheques [get]
// @Param			search		query	string	false	"Case-insensitive substring match on number, bank and beneficiary"
// @Param			match		query	string	false	"Glob pattern matched against number, bank and beneficiary"
// @Param			status		query	string	false	"Filter by lifecycle state. Empty or 'all' returns every state."
// @Param			number		query	string	false	"Filter by exact cheque number"
// @Param			bank		query	string	false	"Filter by exact bank name"
// @Param			beneficiary	query	string	false	"Filter by exact beneficiary"
// @Param			fromDate	query	string	false	"Cheques dated at or after this day"
// @Param			untilDate	query	string	false	"Cheques dated at or before this day"
// @Param			offset		query	uint	false	"The offset of the first Cheque returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Cheques to return. Defaults to 50."
func GetCheques(c *gin.Context) {
	filteredCheques(c, models.DB)
}

// @Summary		Get deleted cheques
// @Description	Returns a list of soft-deleted cheques. They can be restored or deleted permanently.
// @Tags			Cheques
// @Produce		json
// @Success		200	{object}	ChequeListResponse
// @Failure		400	{object}	ChequeListResponse
// @Failure		500	{object}	ChequeListResponse
// @Router			/v1/cheques/deleted/all [get]
func GetDeletedCheques(c *gin.Context) {
	filteredCheques(c, models.DB.Unscoped().Where("cheques.deleted_at IS NOT NULL"))
}

// @Summary		Get cheque
// @Description	Returns a specific cheque from either partition
// @Tags			Cheques
// @Produce		json
// @Success		200	{object}	ChequeResponse
// @Failure		400	{object}	ChequeResponse
// @Failure		404	{object}	ChequeResponse
// @Failure		500	{object}	ChequeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/{id} [get]
func GetCheque(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	var cheque models.Cheque
	err = models.DB.Unscoped().First(&cheque, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	data := newCheque(c, cheque)
	c.JSON(http.StatusOK, ChequeResponse{Data: &data})
}

// @Summary		Create cheque
// @Description	Creates a new cheque in the active partition. Accepts JSON, or multipart form data when a cheque image is attached in the "image" field.
// @Tags			Cheques
// @Accept			json
// @Produce		json
// @Success		201		{object}	ChequeResponse
// @Failure		400		{object}	ChequeResponse
// @Failure		500		{object}	ChequeResponse
// @Param			cheque	body		ChequeEditable	true	"Cheque"
// @Router			/v1/cheques [post]
func CreateCheque(c *gin.Context) {
	var editable ChequeEditable
	var imagePath string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&editable); err != nil {
			s := httputil.ErrInvalidBody.Error()
			c.JSON(http.StatusBadRequest, ChequeResponse{
				Error: &s,
			})
			return
		}

		// The image is optional
		file, err := c.FormFile("image")
		if err == nil {
			imagePath = fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
			if err := c.SaveUploadedFile(file, filepath.Join(UploadDir(), imagePath)); err != nil {
				s := errImageNotReadable.Error()
				c.JSON(http.StatusBadRequest, ChequeResponse{
					Error: &s,
				})
				return
			}
		}
	} else {
		err := httputil.BindData(c, &editable)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ChequeResponse{
				Error: &s,
			})
			return
		}
	}

	cheque := editable.model()
	cheque.ImagePath = imagePath

	err := models.DB.Create(&cheque).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	data := newCheque(c, cheque)
	c.JSON(http.StatusCreated, ChequeResponse{Data: &data})
}

// @Summary		Update cheque
// @Description	Updates an existing cheque. Only values to be updated need to be specified.
// @Tags			Cheques
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChequeResponse
// @Failure		400		{object}	ChequeResponse
// @Failure		404		{object}	ChequeResponse
// @Failure		500		{object}	ChequeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			cheque	body		ChequeEditable	true	"Cheque"
// @Router			/v1/cheques/{id} [patch]
func UpdateCheque(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	// Only cheques in the active partition can be edited
	var cheque models.Cheque
	err = models.DB.First(&cheque, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ChequeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	// Bind the update for the patch
	var update ChequeEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&cheque).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	data := newCheque(c, cheque)
	c.JSON(http.StatusOK, ChequeResponse{Data: &data})
}

// @Summary		Cash cheque
// @Description	Marks a pending cheque as cashed. For cheques in any other state this is a no-op and the cheque is returned unchanged.
// @Tags			Cheques
// @Produce		json
// @Success		200	{object}	ChequeResponse
// @Failure		400	{object}	ChequeResponse
// @Failure		404	{object}	ChequeResponse
// @Failure		500	{object}	ChequeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/{id}/cash [post]
func CashCheque(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	var cheque models.Cheque
	err = models.DB.First(&cheque, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	_, err = cheque.Cash(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	data := newCheque(c, cheque)
	c.JSON(http.StatusOK, ChequeResponse{Data: &data})
}

// @Summary		Delete cheque
// @Description	Moves a cheque to the deleted partition. It can be restored from there.
// @Tags			Cheques
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/{id} [delete]
func DeleteCheque(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var cheque models.Cheque
	err = models.DB.First(&cheque, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&cheque).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Restore cheque
// @Description	Moves a cheque from the deleted partition back to the active partition, unchanged. Fails when the cheque number has been reused by an active cheque in the meantime.
// @Tags			Cheques
// @Produce		json
// @Success		200	{object}	ChequeResponse
// @Failure		400	{object}	ChequeResponse
// @Failure		404	{object}	ChequeResponse
// @Failure		500	{object}	ChequeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/restore/{id} [put]
func RestoreCheque(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	var cheque models.Cheque
	err = models.DB.Unscoped().First(&cheque, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	if cheque.DeletedAt == nil || !cheque.DeletedAt.Valid {
		s := errChequeNotDeleted.Error()
		c.JSON(http.StatusBadRequest, ChequeResponse{
			Error: &s,
		})
		return
	}

	err = cheque.Restorable(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Unscoped().Model(&cheque).Update("deleted_at", nil).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChequeResponse{
			Error: &s,
		})
		return
	}

	cheque.DeletedAt = nil
	data := newCheque(c, cheque)
	c.JSON(http.StatusOK, ChequeResponse{Data: &data})
}

// @Summary		Delete cheque permanently
// @Description	Irreversibly removes a cheque from the deleted partition. The cheque must be soft-deleted first.
// @Tags			Cheques
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cheques/permanent/{id} [delete]
func DeleteChequePermanently(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var cheque models.Cheque
	err = models.DB.Unscoped().First(&cheque, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if cheque.DeletedAt == nil || !cheque.DeletedAt.Valid {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errChequeNotDeleted.Error(),
		})
		return
	}

	if cheque.ImagePath != "" {
		// Best effort, a leftover file is not worth failing the request
		_ = os.Remove(filepath.Join(UploadDir(), cheque.ImagePath))
	}

	err = models.DB.Unscoped().Delete(&cheque).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
