package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money is a cent-precision amount used at the edges of the engine:
// parsing user-supplied amounts and formatting them for display.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal wraps d without rounding.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses a plain decimal amount and rounds it to cents.
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}.Round(), nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{RoundCents(m.Decimal)}
}

// String returns the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as dollars, sign before the symbol.
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + m.Decimal.Neg().StringFixed(2)
	}
	return "$" + m.String()
}

// RoundCents rounds a raw decimal to whole cents, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RateFromFloat converts a float rate to a decimal. NaN and infinities are
// reported as invalid and converted to zero so they never reach currency math.
func RateFromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// CompoundFactor returns (1+rate)^years. Negative year counts discount, so
// values indexed from a later base year deflate for earlier years.
func CompoundFactor(rate decimal.Decimal, years int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	growth := one.Add(rate)
	n := years
	if n < 0 {
		if !growth.IsPositive() {
			return one
		}
		n = -n
	}
	factor := one
	for y := 0; y < n; y++ {
		factor = factor.Mul(growth)
	}
	if years < 0 {
		return one.Div(factor)
	}
	return factor
}
