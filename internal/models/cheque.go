package models

import (
	"encoding/json"
	"strings"

	"github.com/cheqify/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChequeStatus is the lifecycle state of a cheque.
//
// It is a closed enum: pending cheques can be cashed, everything else
// only changes through an explicit edit.
type ChequeStatus string

const (
	StatusPending  ChequeStatus = "pending"
	StatusCashed   ChequeStatus = "cashed"
	StatusReturned ChequeStatus = "returned"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ChequeStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCashed, StatusReturned:
		return true
	}

	return false
}

// Cheque represents a bank cheque tracked through its lifecycle.
//
// A cheque is in exactly one of two partitions: active (DeletedAt unset)
// or deleted (DeletedAt set). Default queries only see the active
// partition, the deleted partition is reached with Unscoped queries.
type Cheque struct {
	DefaultModel
	Number      string          `gorm:"index"` // Unique among active cheques, checked in the gorm hooks
	Bank        string
	Beneficiary string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status      ChequeStatus    `gorm:"default:pending"`
	Corbata     int             // Grace period days between cheque date and deposit date, informational only
	SignedBy    string
	Notes       string
	ChequeDate  types.Date
	DepositDate types.Date
	ImagePath   string // Path of the uploaded cheque image, relative to the upload directory
}

// BeforeSave validates the cheque and trims whitespace from all strings.
func (c *Cheque) BeforeSave(_ *gorm.DB) error {
	c.Number = strings.TrimSpace(c.Number)
	c.Bank = strings.TrimSpace(c.Bank)
	c.Beneficiary = strings.TrimSpace(c.Beneficiary)
	c.SignedBy = strings.TrimSpace(c.SignedBy)
	c.Notes = strings.TrimSpace(c.Notes)

	if c.Status == "" {
		c.Status = StatusPending
	}

	if !c.Status.Valid() {
		return ErrChequeStatusInvalid
	}

	if c.Amount.IsNegative() {
		return ErrChequeAmountNegative
	}

	if c.Corbata < 0 {
		return ErrCorbataNegative
	}

	return nil
}

func (c *Cheque) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.ChequeDate.IsZero() {
		return ErrChequeDateMissing
	}

	return checkNumberUnique(tx, c.Number, c.ID)
}

// BeforeUpdate verifies the state of the cheque before committing an
// update to the database. Partial updates carry the new values in the
// statement destination, not in the receiver.
func (c *Cheque) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Cheque)
	if !ok {
		// Single-column updates (Cash, Restore) pass a map and are
		// validated by their callers.
		return nil
	}

	if tx.Statement.Changed("Number") {
		err := checkNumberUnique(tx, toSave.Number, c.ID)
		if err != nil {
			return err
		}
	}

	if tx.Statement.Changed("Status") && !toSave.Status.Valid() {
		return ErrChequeStatusInvalid
	}

	if tx.Statement.Changed("Amount") && toSave.Amount.IsNegative() {
		return ErrChequeAmountNegative
	}

	return nil
}

// checkNumberUnique enforces that a cheque number is used by at most one
// active cheque. Soft-deleted cheques do not count, their number becomes
// usable again until they are restored.
func checkNumberUnique(tx *gorm.DB, number string, id uuid.UUID) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrChequeNumberMissing
	}

	var count int64
	err := tx.Model(&Cheque{}).
		Where("number = ?", number).
		Where("id != ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrChequeNumberNotUnique
	}

	return nil
}

// Cash transitions a pending cheque to cashed.
//
// For cheques in any other state the call is a no-op: it reports false
// and issues no database update.
func (c *Cheque) Cash(db *gorm.DB) (bool, error) {
	if c.Status != StatusPending {
		return false, nil
	}

	err := db.Model(c).Update("status", StatusCashed).Error
	if err != nil {
		return false, err
	}

	return true, nil
}

// Restorable reports whether the cheque can move back to the active
// partition, which requires its number to be free among active cheques.
func (c *Cheque) Restorable(db *gorm.DB) error {
	return checkNumberUnique(db, c.Number, c.ID)
}

// StatusAggregate is the count and sum for a single lifecycle state.
type StatusAggregate struct {
	Count int             `json:"count" example:"7"`      // Number of cheques with this status
	Sum   decimal.Decimal `json:"sum" example:"10500.00"` // Sum of the amounts of these cheques
}

func (a *StatusAggregate) add(amount decimal.Decimal) {
	a.Count++
	a.Sum = a.Sum.Add(amount)
}

// ChequeSummary aggregates a cheque partition by lifecycle state.
type ChequeSummary struct {
	Pending    StatusAggregate `json:"pending"`
	Cashed     StatusAggregate `json:"cashed"`
	Returned   StatusAggregate `json:"returned"`
	TotalCount int             `json:"totalCount" example:"12"`
	TotalSum   decimal.Decimal `json:"totalSum" example:"17250.50"`
}

// ChequesSummary computes counts and sums per status for all cheques the
// query sees. Sums are accumulated as decimals, so monetary totals do not
// drift the way repeated float addition would.
func ChequesSummary(db *gorm.DB) (ChequeSummary, error) {
	var cheques []Cheque
	err := db.Find(&cheques).Error
	if err != nil {
		return ChequeSummary{}, err
	}

	summary := ChequeSummary{}
	for _, cheque := range cheques {
		switch cheque.Status {
		case StatusPending:
			summary.Pending.add(cheque.Amount)
		case StatusCashed:
			summary.Cashed.add(cheque.Amount)
		case StatusReturned:
			summary.Returned.add(cheque.Amount)
		}

		summary.TotalCount++
		summary.TotalSum = summary.TotalSum.Add(cheque.Amount)
	}

	return summary, nil
}

// Export returns all cheques on this instance, deleted partition included.
func (Cheque) Export() (json.RawMessage, error) {
	var cheques []Cheque
	err := DB.Unscoped().Where(&Cheque{}).Find(&cheques).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&cheques)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
