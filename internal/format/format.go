// Package format renders amounts and dates for display.
//
// All arithmetic stays decimal; formatting converts to float only for
// the final string.
package format

import (
	"time"

	"github.com/cheqify/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amount renders a monetary amount with the symbol of the given
// ISO 4217 currency code, e.g. "DOP 1,500.00".
func Amount(amount decimal.Decimal, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", err
	}

	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(amount.InexactFloat64()))), nil
}

// Date renders a date with the given Go reference layout.
func Date(d types.Date, layout string) string {
	if d.IsZero() {
		return ""
	}

	return time.Time(d).Format(layout)
}
