package v1

import (
	"net/http"

	"github.com/cheqify/backend/internal/format"
	"github.com/cheqify/backend/internal/httputil"
	"github.com/cheqify/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StatsResponse is the response object for the stats endpoint
type StatsResponse struct {
	Data  *Stats  `json:"data"`
	Error *string `json:"error" example:"A human readable error message"`
}

// Stats aggregates cheque counts and amounts per lifecycle state
type Stats struct {
	Pending        models.StatusAggregate `json:"pending"`
	Cashed         models.StatusAggregate `json:"cashed"`
	Returned       models.StatusAggregate `json:"returned"`
	TotalCount     int                    `json:"totalCount" example:"38"`
	TotalSum       decimal.Decimal        `json:"totalSum" example:"184720.50"`
	FormattedTotal string                 `json:"formattedTotal" example:"RD$ 184,720.50"`
	DeletedCount   int                    `json:"deletedCount" example:"4"`
	DeletedSum     decimal.Decimal        `json:"deletedSum" example:"9300.00"`
}

// RegisterStatsRoutes registers the routes for stats with
// the RouterGroup that is passed.
func RegisterStatsRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsStats)
		r.GET("", GetStats)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Stats
// @Success		204
// @Router			/v1/stats [options]
func OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get stats
// @Description	Returns counts and decimal sums per lifecycle state over the active partition, plus totals for the deleted partition
// @Tags			Stats
// @Produce		json
// @Success		200	{object}	StatsResponse
// @Failure		500	{object}	StatsResponse
// @Router			/v1/stats [get]
func GetStats(c *gin.Context) {
	summary, err := models.ChequesSummary(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatsResponse{
			Error: &s,
		})
		return
	}

	deleted, err := models.ChequesSummary(models.DB.Unscoped().Where("cheques.deleted_at IS NOT NULL"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatsResponse{
			Error: &s,
		})
		return
	}

	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatsResponse{
			Error: &s,
		})
		return
	}

	formatted, err := format.Amount(summary.TotalSum, settings.Currency)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Data: &Stats{
		Pending:        summary.Pending,
		Cashed:         summary.Cashed,
		Returned:       summary.Returned,
		TotalCount:     summary.TotalCount,
		TotalSum:       summary.TotalSum,
		FormattedTotal: formatted,
		DeletedCount:   deleted.TotalCount,
		DeletedSum:     deleted.TotalSum,
	}})
}
