package v1

import (
	"fmt"

	"github.com/cheqify/backend/internal/models"
	"github.com/cheqify/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ChequeEditable struct {
	Number      string              `json:"number" form:"number" example:"001"`                  // The cheque number, unique among active cheques
	Bank        string              `json:"bank" form:"bank" example:"BHD"`                      // Issuing bank
	Beneficiary string              `json:"beneficiary" form:"beneficiary" example:"Juan Pérez"` // Who the cheque is made out to
	Amount      decimal.Decimal     `json:"amount" form:"amount" example:"1500.00"`              // The cheque amount, must not be negative
	Status      models.ChequeStatus `json:"status" form:"status" example:"pending"`              // Lifecycle state, defaults to pending
	Corbata     int                 `json:"corbata" form:"corbata" example:"3"`                  // Grace period days, informational
	SignedBy    string              `json:"signedBy" form:"signedBy" example:"M. Reyes"`         // Who signed the cheque
	Notes       string              `json:"notes" form:"notes" example:"Rent for January"`       // Free-form notes
	ChequeDate  types.Date          `json:"chequeDate" form:"chequeDate" example:"2024-01-10"`   // Date written on the cheque
	DepositDate types.Date          `json:"depositDate" form:"depositDate" example:"2024-01-13"` // Date the cheque was deposited
}

// model returns the database resource for the API representation of the editable fields
func (editable ChequeEditable) model() models.Cheque {
	return models.Cheque{
		Number:      editable.Number,
		Bank:        editable.Bank,
		Beneficiary: editable.Beneficiary,
		Amount:      editable.Amount,
		Status:      editable.Status,
		Corbata:     editable.Corbata,
		SignedBy:    editable.SignedBy,
		Notes:       editable.Notes,
		ChequeDate:  editable.ChequeDate,
		DepositDate: editable.DepositDate,
	}
}

type ChequeLinks struct {
	Self  string `json:"self" example:"https://example.com/v1/cheques/d430d7c3-d14c-4712-9336-ee56965a6673"`        // The cheque itself
	Image string `json:"image,omitempty" example:"https://example.com/uploads/d430d7c3.png"`                        // The uploaded cheque image, if any
	Cash  string `json:"cash,omitempty" example:"https://example.com/v1/cheques/d430d7c3-d14c-4712-9336-ee56965a6673/cash"` // Endpoint to mark a pending cheque as cashed
}

// Cheque is the representation of a Cheque in API v1.
type Cheque struct {
	models.DefaultModel
	ChequeEditable
	Links ChequeLinks `json:"links"`
}

// newCheque returns the API v1 representation of the resource
func newCheque(c *gin.Context, model models.Cheque) Cheque {
	url := c.GetString(string(models.DBContextURL))

	links := ChequeLinks{
		Self: fmt.Sprintf("%s/v1/cheques/%s", url, model.ID),
	}

	if model.ImagePath != "" {
		links.Image = fmt.Sprintf("%s/uploads/%s", url, model.ImagePath)
	}

	if model.Status == models.StatusPending {
		links.Cash = fmt.Sprintf("%s/v1/cheques/%s/cash", url, model.ID)
	}

	return Cheque{
		DefaultModel: model.DefaultModel,
		ChequeEditable: ChequeEditable{
			Number:      model.Number,
			Bank:        model.Bank,
			Beneficiary: model.Beneficiary,
			Amount:      model.Amount,
			Status:      model.Status,
			Corbata:     model.Corbata,
			SignedBy:    model.SignedBy,
			Notes:       model.Notes,
			ChequeDate:  model.ChequeDate,
			DepositDate: model.DepositDate,
		},
		Links: links,
	}
}

type ChequeListResponse struct {
	Data       []Cheque    `json:"data"`                                                          // List of cheques
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ChequeResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Cheque `json:"data"`                                                          // The Cheque data, if the request was successful
}

type ChequeQueryFilter struct {
	Search      string              `form:"search" filterField:"false"`    // Case-insensitive substring match on number, bank and beneficiary
	Match       string              `form:"match" filterField:"false"`     // Glob pattern matched against number, bank and beneficiary
	Status      models.ChequeStatus `form:"status" filterField:"false"`    // Filter by lifecycle state, empty or "all" returns every state
	Number      string              `form:"number"`                        // Filter by exact cheque number
	Bank        string              `form:"bank"`                          // Filter by exact bank name
	Beneficiary string              `form:"beneficiary"`                   // Filter by exact beneficiary
	FromDate    types.Date          `form:"fromDate" filterField:"false"`  // Cheques dated at or after this day
	UntilDate   types.Date          `form:"untilDate" filterField:"false"` // Cheques dated at or before this day
	Offset      uint                `form:"offset" filterField:"false"`    // The offset of the first Cheque returned. Defaults to 0.
	Limit       int                 `form:"limit" filterField:"false"`     // Maximum number of Cheques to return. Defaults to 50.
}

func (f ChequeQueryFilter) model() models.Cheque {
	// This does not set the search, match, status and date fields since
	// they are handled in the controller function
	return models.Cheque{
		Number:      f.Number,
		Bank:        f.Bank,
		Beneficiary: f.Beneficiary,
	}
}

// StatusAll is the sentinel filter value that matches every lifecycle state.
const StatusAll models.ChequeStatus = "all"
