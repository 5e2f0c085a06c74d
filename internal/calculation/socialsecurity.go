package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// SSThresholds are the provisional-income base amounts for one filing status.
type SSThresholds struct {
	Lower decimal.Decimal
	Upper decimal.Decimal
}

var ssThresholds = map[domain.FilingStatus]SSThresholds{
	domain.MarriedFilingJointly: {Lower: decimal.NewFromInt(32000), Upper: decimal.NewFromInt(44000)},
	domain.Single:               {Lower: decimal.NewFromInt(25000), Upper: decimal.NewFromInt(34000)},
}

// ThresholdsFor returns the Social Security base amounts for the filing status.
func ThresholdsFor(status domain.FilingStatus) (SSThresholds, error) {
	th, ok := ssThresholds[status]
	if !ok {
		return SSThresholds{}, fmt.Errorf("%w: %q", domain.ErrInvalidFilingStatus, status)
	}
	return th, nil
}

// SocialSecurityBreakdown splits a gross benefit into taxable and
// non-taxable portions.
type SocialSecurityBreakdown struct {
	Benefit     decimal.Decimal
	OtherIncome decimal.Decimal
	Provisional decimal.Decimal
	Taxable     decimal.Decimal
	NonTaxable  decimal.Decimal
}

var (
	half          = decimal.NewFromFloat(0.5)
	eightyFivePct = decimal.NewFromFloat(0.85)
)

// ProvisionalIncome is other income plus half the gross benefit.
func ProvisionalIncome(ssBenefit, otherIncome decimal.Decimal) decimal.Decimal {
	return otherIncome.Add(ssBenefit.Mul(half))
}

// TaxableSocialSecurity applies the two-tier provisional income rule:
//
//	provisional <= lower:         0
//	provisional <= upper:         min(50% of benefit, 50% of (provisional - lower))
//	provisional >  upper:         min(85% of benefit, 50% of (upper - lower) + 85% of (provisional - upper))
func TaxableSocialSecurity(ssBenefit, otherIncome decimal.Decimal, th SSThresholds) SocialSecurityBreakdown {
	out := SocialSecurityBreakdown{
		Benefit:     ssBenefit,
		OtherIncome: otherIncome,
		Taxable:     decimal.Zero,
		NonTaxable:  ssBenefit,
	}
	if !ssBenefit.IsPositive() {
		out.NonTaxable = decimal.Zero
		return out
	}

	provisional := ProvisionalIncome(ssBenefit, otherIncome)
	out.Provisional = provisional

	switch {
	case !provisional.GreaterThan(th.Lower):
		return out
	case !provisional.GreaterThan(th.Upper):
		out.Taxable = decimal.Min(ssBenefit.Mul(half), provisional.Sub(th.Lower).Mul(half))
	default:
		tier1 := th.Upper.Sub(th.Lower).Mul(half)
		tier2 := provisional.Sub(th.Upper).Mul(eightyFivePct)
		out.Taxable = decimal.Min(ssBenefit.Mul(eightyFivePct), tier1.Add(tier2))
	}
	out.NonTaxable = ssBenefit.Sub(out.Taxable)
	return out
}

// ApplyCOLA compounds a benefit by the cost-of-living rate for the given
// number of years.
func ApplyCOLA(benefit, colaRate decimal.Decimal, years int) decimal.Decimal {
	return money.RoundCents(benefit.Mul(money.CompoundFactor(colaRate, years)))
}
