// Package money parses, rounds and formats expense amounts.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for strings that are not a finite decimal number
// within MaxAmount.
var ErrInvalidAmount = errors.New("invalid amount")

const (
	maxInputLen = 32
	maxExponent = 20
)

// MaxAmount is the largest accepted absolute amount. Sums of any realistic
// number of rows stay finite.
var MaxAmount = decimal.New(1, 12)

// Parse converts a decimal string into an amount rounded to 2 decimals.
// The sign is not checked; callers decide which values are acceptable.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// The exponent is bounded before any rescaling so 1e3000000 stays cheap.
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return 0, ErrInvalidAmount
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return 0, ErrInvalidAmount
	}
	v := d.Round(2).InexactFloat64()
	if !finite(v) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Round rounds v to 2 decimals, halves away from zero. NaN and Inf are
// returned unchanged.
func Round(v float64) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Sum adds amounts exactly and rounds the result to 2 decimals. A NaN or
// Inf input makes the result the plain float sum.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if !finite(v) {
			return floatSum(values)
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Format renders an amount with exactly 2 decimals.
func Format(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func floatSum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
