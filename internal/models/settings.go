package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Settings is the instance-wide configuration.
//
// It replaces the free-form configuration object the frontend used to
// keep in browser storage. There is exactly one row, created with
// defaults on first read.
type Settings struct {
	DefaultModel
	Theme          string          `gorm:"default:dark"`       // Display theme for clients
	Currency       string          `gorm:"default:DOP"`        // ISO 4217 code used for formatted amounts
	DateFormat     string          `gorm:"default:02/01/2006"` // Go reference layout for formatted dates
	PageSize       int             `gorm:"default:10"`         // Rows per page in cheque tables
	AlertThreshold decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Amount above which clients highlight a cheque
}

// BeforeSave validates the settings.
func (s *Settings) BeforeSave(_ *gorm.DB) error {
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))

	if s.Currency != "" {
		_, err := currency.ParseISO(s.Currency)
		if err != nil {
			return ErrCurrencyInvalid
		}
	}

	if s.PageSize < 0 {
		return ErrPageSizeInvalid
	}

	if s.AlertThreshold.IsNegative() {
		return ErrChequeAmountNegative
	}

	return nil
}

// BeforeUpdate verifies the settings before committing an update to the
// database. Partial updates carry the new values in the statement
// destination, not in the receiver.
func (s *Settings) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Settings)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Currency") {
		_, err := currency.ParseISO(strings.TrimSpace(toSave.Currency))
		if err != nil {
			return ErrCurrencyInvalid
		}
	}

	if tx.Statement.Changed("PageSize") && toSave.PageSize < 0 {
		return ErrPageSizeInvalid
	}

	if tx.Statement.Changed("AlertThreshold") && toSave.AlertThreshold.IsNegative() {
		return ErrChequeAmountNegative
	}

	return nil
}

// defaultSettings returns the settings used until an admin changes them.
func defaultSettings() Settings {
	return Settings{
		Theme:      "dark",
		Currency:   "DOP",
		DateFormat: "02/01/2006",
		PageSize:   10,
	}
}

// LoadSettings returns the settings row, creating it with defaults when
// it does not exist yet.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var settings Settings

	err := db.Order("created_at ASC").First(&settings).Error
	if err == nil {
		return settings, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound) {
		return Settings{}, err
	}

	settings = defaultSettings()
	err = db.Create(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Export returns the settings for this instance.
func (Settings) Export() (json.RawMessage, error) {
	var settings []Settings
	err := DB.Unscoped().Where(&Settings{}).Find(&settings).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&settings)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
