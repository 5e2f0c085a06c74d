package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// TAX MODEL ASSUMPTIONS:
//
// 1. Federal brackets, standard deductions and the 65+ additional deduction use
//    2024 figures, indexed by (1 + inflation)^(year - 2024).
// 2. Social Security thresholds (32k/44k MFJ, 25k/34k single) are statutory and
//    never indexed.
// 3. No itemized deductions, state tax, AMT or NIIT.

// BaseTaxYear is the year the built-in tables describe.
const BaseTaxYear = 2024

// TaxBracket is one marginal rate and its upper bound. An invalid (null)
// ceiling marks the top, unbounded bracket.
type TaxBracket struct {
	Rate    decimal.Decimal
	Ceiling decimal.NullDecimal
}

// BracketTable is an ordered set of brackets for one filing status.
type BracketTable []TaxBracket

func bounded(rate float64, ceiling int64) TaxBracket {
	return TaxBracket{
		Rate:    decimal.NewFromFloat(rate),
		Ceiling: decimal.NewNullDecimal(decimal.NewFromInt(ceiling)),
	}
}

func top(rate float64) TaxBracket {
	return TaxBracket{Rate: decimal.NewFromFloat(rate)}
}

var baseBrackets = map[domain.FilingStatus]BracketTable{
	domain.MarriedFilingJointly: {
		bounded(0.10, 23200),
		bounded(0.12, 94300),
		bounded(0.22, 201050),
		bounded(0.24, 383900),
		bounded(0.32, 487450),
		bounded(0.35, 731200),
		top(0.37),
	},
	domain.Single: {
		bounded(0.10, 11600),
		bounded(0.12, 47150),
		bounded(0.22, 100525),
		bounded(0.24, 191950),
		bounded(0.32, 243725),
		bounded(0.35, 609350),
		top(0.37),
	},
}

var baseStandardDeduction = map[domain.FilingStatus]decimal.Decimal{
	domain.MarriedFilingJointly: decimal.NewFromInt(29200),
	domain.Single:               decimal.NewFromInt(14600),
}

// Per qualifying filer aged 65 or older.
var baseAdditionalDeduction = map[domain.FilingStatus]decimal.Decimal{
	domain.MarriedFilingJointly: decimal.NewFromInt(1550),
	domain.Single:               decimal.NewFromInt(1950),
}

// Validate checks that ceilings are strictly increasing and only the last
// bracket is unbounded.
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no brackets", domain.ErrInvalidBracketTable)
	}
	prev := decimal.Zero
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: bracket %d rate %s out of range", domain.ErrInvalidBracketTable, i, b.Rate)
		}
		last := i == len(t)-1
		if !b.Ceiling.Valid {
			if !last {
				return fmt.Errorf("%w: bracket %d is unbounded but not last", domain.ErrInvalidBracketTable, i)
			}
			continue
		}
		if last {
			return fmt.Errorf("%w: last bracket must be unbounded", domain.ErrInvalidBracketTable)
		}
		if !b.Ceiling.Decimal.GreaterThan(prev) {
			return fmt.Errorf("%w: bracket %d ceiling %s does not exceed %s", domain.ErrInvalidBracketTable, i, b.Ceiling.Decimal, prev)
		}
		prev = b.Ceiling.Decimal
	}
	return nil
}

// TaxFromBrackets applies marginal rates to taxable income. Non-positive
// income owes nothing.
func TaxFromBrackets(taxable decimal.Decimal, brackets BracketTable) decimal.Decimal {
	tax := decimal.Zero
	prev := decimal.Zero
	for _, b := range brackets {
		if !taxable.GreaterThan(prev) {
			break
		}
		upper := taxable
		if b.Ceiling.Valid && b.Ceiling.Decimal.LessThan(taxable) {
			upper = b.Ceiling.Decimal
		}
		tax = tax.Add(upper.Sub(prev).Mul(b.Rate))
		if !b.Ceiling.Valid {
			break
		}
		prev = b.Ceiling.Decimal
	}
	return tax
}

// TaxBrackets returns the bracket table for the filing status, with every
// ceiling indexed from the base year.
func TaxBrackets(status domain.FilingStatus, year int, inflation decimal.Decimal) (BracketTable, error) {
	base, ok := baseBrackets[status]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFilingStatus, status)
	}
	factor := money.CompoundFactor(inflation, year-BaseTaxYear)
	out := make(BracketTable, len(base))
	for i, b := range base {
		out[i] = b
		if b.Ceiling.Valid {
			out[i].Ceiling = decimal.NewNullDecimal(money.RoundCents(b.Ceiling.Decimal.Mul(factor)))
		}
	}
	return out, nil
}

// StandardDeduction returns the indexed standard deduction.
func StandardDeduction(status domain.FilingStatus, year int, inflation decimal.Decimal) (decimal.Decimal, error) {
	base, ok := baseStandardDeduction[status]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFilingStatus, status)
	}
	return money.RoundCents(base.Mul(money.CompoundFactor(inflation, year-BaseTaxYear))), nil
}

// AdditionalStandardDeduction returns the indexed extra deduction for the
// given number of filers aged 65 or older.
func AdditionalStandardDeduction(status domain.FilingStatus, seniors, year int, inflation decimal.Decimal) decimal.Decimal {
	base, ok := baseAdditionalDeduction[status]
	if !ok || seniors <= 0 {
		return decimal.Zero
	}
	per := base.Mul(money.CompoundFactor(inflation, year-BaseTaxYear))
	return money.RoundCents(per.Mul(decimal.NewFromInt(int64(seniors))))
}

// ElectiveDeferralLimit is the indexed employee deferral cap, including the
// catch-up allowance from age 50.
func ElectiveDeferralLimit(age, year int, inflation decimal.Decimal) decimal.Decimal {
	limit := decimal.NewFromInt(23000)
	if age >= 50 {
		limit = limit.Add(decimal.NewFromInt(7500))
	}
	return money.RoundCents(limit.Mul(money.CompoundFactor(inflation, year-BaseTaxYear)))
}

// FederalTaxCalculator computes federal income tax for one filing status and
// tax year.
type FederalTaxCalculator struct {
	Status            domain.FilingStatus
	Year              int
	Brackets          BracketTable
	StandardDeduction decimal.Decimal
	Thresholds        SSThresholds
}

// NewFederalTaxCalculator builds the indexed tables for a tax year. seniors is
// the number of filers aged 65 or older.
func NewFederalTaxCalculator(status domain.FilingStatus, year int, inflation decimal.Decimal, seniors int) (*FederalTaxCalculator, error) {
	brackets, err := TaxBrackets(status, year, inflation)
	if err != nil {
		return nil, err
	}
	std, err := StandardDeduction(status, year, inflation)
	if err != nil {
		return nil, err
	}
	thresholds, err := ThresholdsFor(status)
	if err != nil {
		return nil, err
	}
	return &FederalTaxCalculator{
		Status:            status,
		Year:              year,
		Brackets:          brackets,
		StandardDeduction: std.Add(AdditionalStandardDeduction(status, seniors, year, inflation)),
		Thresholds:        thresholds,
	}, nil
}

// TaxResult is the outcome of one federal tax computation.
type TaxResult struct {
	OrdinaryIncome decimal.Decimal
	SocialSecurity SocialSecurityBreakdown
	Deduction      decimal.Decimal
	TaxableIncome  decimal.Decimal
	Tax            decimal.Decimal
}

// Calculate taxes ordinary income (everything taxable except Social Security)
// plus the taxable share of the gross Social Security benefit.
func (c *FederalTaxCalculator) Calculate(ordinary, ssBenefit decimal.Decimal) TaxResult {
	ss := TaxableSocialSecurity(ssBenefit, ordinary, c.Thresholds)
	taxable := ordinary.Add(ss.Taxable).Sub(c.StandardDeduction)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	return TaxResult{
		OrdinaryIncome: ordinary,
		SocialSecurity: ss,
		Deduction:      c.StandardDeduction,
		TaxableIncome:  taxable,
		Tax:            TaxFromBrackets(taxable, c.Brackets),
	}
}
