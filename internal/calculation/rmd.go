package calculation

import (
	"github.com/shopspring/decimal"

	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// RMDStartAge is the first age at which a distribution is required.
const RMDStartAge = 73

// IRS Uniform Lifetime Table distribution periods.
var uniformLifetime = map[int]decimal.Decimal{
	73:  decimal.NewFromFloat(26.5),
	74:  decimal.NewFromFloat(25.5),
	75:  decimal.NewFromFloat(24.6),
	76:  decimal.NewFromFloat(23.7),
	77:  decimal.NewFromFloat(22.9),
	78:  decimal.NewFromFloat(22.0),
	79:  decimal.NewFromFloat(21.1),
	80:  decimal.NewFromFloat(20.2),
	81:  decimal.NewFromFloat(19.4),
	82:  decimal.NewFromFloat(18.5),
	83:  decimal.NewFromFloat(17.7),
	84:  decimal.NewFromFloat(16.8),
	85:  decimal.NewFromFloat(16.0),
	86:  decimal.NewFromFloat(15.2),
	87:  decimal.NewFromFloat(14.4),
	88:  decimal.NewFromFloat(13.7),
	89:  decimal.NewFromFloat(12.9),
	90:  decimal.NewFromFloat(12.2),
	91:  decimal.NewFromFloat(11.5),
	92:  decimal.NewFromFloat(10.8),
	93:  decimal.NewFromFloat(10.1),
	94:  decimal.NewFromFloat(9.5),
	95:  decimal.NewFromFloat(8.9),
	96:  decimal.NewFromFloat(8.4),
	97:  decimal.NewFromFloat(7.8),
	98:  decimal.NewFromFloat(7.3),
	99:  decimal.NewFromFloat(6.8),
	100: decimal.NewFromFloat(6.4),
}

// LifeExpectancyFactor returns the distribution period for an age. Past 100
// the factor drops 0.1 per year and never goes below 1.0. Ages before
// RMDStartAge report false.
func LifeExpectancyFactor(age int) (decimal.Decimal, bool) {
	if age < RMDStartAge {
		return decimal.Zero, false
	}
	if f, ok := uniformLifetime[age]; ok {
		return f, true
	}
	step := decimal.NewFromFloat(0.1).Mul(decimal.NewFromInt(int64(age - 100)))
	f := uniformLifetime[100].Sub(step)
	one := decimal.NewFromInt(1)
	if f.LessThan(one) {
		f = one
	}
	return f, true
}

// CalculateRMD returns the required distribution for the year from the prior
// year-end tax-deferred balance.
func CalculateRMD(enabled bool, age int, priorBalance decimal.Decimal) decimal.Decimal {
	if !enabled || !priorBalance.IsPositive() {
		return decimal.Zero
	}
	factor, ok := LifeExpectancyFactor(age)
	if !ok {
		return decimal.Zero
	}
	return money.RoundCents(priorBalance.Div(factor))
}
