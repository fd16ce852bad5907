package model

import "github.com/shopspring/decimal"

// Coordinates and weights are stored as NUMERIC(12,6): at most six integer
// digits and six decimal places. Values are rounded to six decimal places on
// the way in (matching what the database would do) and rejected when the
// integer part overflows.

// numericScale is the number of decimal places kept for coordinates and weights.
const numericScale = 6

// numericMax is the smallest positive value that no longer fits NUMERIC(12,6).
var numericMax = decimal.New(1, 6) // 10^6

// NumericFromFloat converts an optional float into a store decimal, rounding
// to the declared scale. The second return is false when the value does not
// fit the declared precision.
func NumericFromFloat(f *float64) (*decimal.Decimal, bool) {
	if f == nil {
		return nil, true
	}
	d := decimal.NewFromFloat(*f).Round(numericScale)
	if d.Abs().Cmp(numericMax) >= 0 {
		return nil, false
	}
	return &d, true
}

// FloatFromNumeric converts an optional store decimal back to a float for
// transfer schemas.
func FloatFromNumeric(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
