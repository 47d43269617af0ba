// Package types implements special types for Cheqify.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date is a calendar day. The time of day is always zero, the location
// is always UTC.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which a time occurs, in UTC.
func DateOf(t time.Time) Date {
	year, month, day := t.In(time.UTC).Date()
	return NewDate(year, month, day)
}

// ParseDate parses a string in RFC3339 full-date format ("2006-01-02")
// and returns the Date value it represents.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	year, month, day := time.Time(d).Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the date in YYYY-MM-DD format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both YYYY-MM-DD strings and RFC3339 timestamps are accepted,
// everything but the calendar day of a timestamp is ignored.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	return d.parse(value)
}

// UnmarshalParam implements the binding.BindUnmarshaler interface so
// that Date values can be bound from query strings and form data.
func (d *Date) UnmarshalParam(param string) error {
	if param == "" {
		*d = Date{}
		return nil
	}

	return d.parse(param)
}

func (d *Date) parse(value string) error {
	match, err := regexp.MatchString("^[0-9]{4}-[0-9]{2}-[0-9]{2}$", value)
	if err != nil {
		return err
	}

	// RFC3339 is the default pattern
	pattern := "2006-01-02T15:04:05Z07:00"
	if match {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// Scan reads the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DateOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays adds a specified amount of days.
func (d Date) AddDays(days int) Date {
	return Date(time.Time(d).AddDate(0, 0, days))
}

// Before reports whether the date d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the date d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same calendar day.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}
