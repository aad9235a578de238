package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoursBetween derives the decimal hours spanned by [start, end),
// rounded to two fraction digits.
func HoursBetween(start, end time.Time) (decimal.Decimal, error) {
	if !end.After(start) {
		return decimal.Zero, ErrInvalidInterval
	}

	return decimal.NewFromFloat(end.Sub(start).Hours()).Round(2), nil
}
