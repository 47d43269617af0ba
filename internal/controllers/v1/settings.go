package v1

import (
	"net/http"

	"github.com/cheqify/backend/internal/auth"
	"github.com/cheqify/backend/internal/httputil"
	"github.com/cheqify/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SettingsEditable are the settings fields that can be changed after the
// instance has been set up.
type SettingsEditable struct {
	Theme          string          `json:"theme" example:"dark"`               // Client color scheme
	Currency       string          `json:"currency" example:"DOP"`             // ISO 4217 code used for formatted amounts
	DateFormat     string          `json:"dateFormat" example:"02/01/2006"`    // Go reference layout for formatted dates
	PageSize       int             `json:"pageSize" example:"10"`              // Rows per page in cheque tables
	AlertThreshold decimal.Decimal `json:"alertThreshold" example:"100000.00"` // Amount above which clients highlight a cheque
}

func (editable SettingsEditable) model() models.Settings {
	return models.Settings{
		Theme:          editable.Theme,
		Currency:       editable.Currency,
		DateFormat:     editable.DateFormat,
		PageSize:       editable.PageSize,
		AlertThreshold: editable.AlertThreshold,
	}
}

// Settings is the API representation of the instance settings.
type Settings struct {
	models.DefaultModel
	SettingsEditable
}

func newSettings(model models.Settings) Settings {
	return Settings{
		DefaultModel: model.DefaultModel,
		SettingsEditable: SettingsEditable{
			Theme:          model.Theme,
			Currency:       model.Currency,
			DateFormat:     model.DateFormat,
			PageSize:       model.PageSize,
			AlertThreshold: model.AlertThreshold,
		},
	}
}

// SettingsResponse is the response object for the settings
type SettingsResponse struct {
	Data  *Settings `json:"data"`
	Error *string   `json:"error" example:"A human readable error message"`
}

// RegisterSettingsRoutes registers the routes for settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSettings)
		r.GET("", GetSettings)
		r.PATCH("", auth.RequireAdmin(), UpdateSettings)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the settings of this instance. They are created with defaults on first read.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	data := newSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}

// @Summary		Update settings
// @Description	Updates the instance settings. Only values to be updated need to be specified.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		500			{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SettingsEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	var update SettingsEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&settings).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	data := newSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}
