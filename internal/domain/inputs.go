package domain

import (
	"github.com/shopspring/decimal"
)

// Inputs is the complete, validated description of one retirement plan.
// Monetary amounts are annual and expressed in start-year dollars unless the
// field says otherwise.
type Inputs struct {
	Name         string       `yaml:"name" json:"name"`
	StartYear    int          `yaml:"start_year" json:"start_year"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status"`

	Subject Person  `yaml:"subject" json:"subject"`
	Spouse  *Person `yaml:"spouse,omitempty" json:"spouse,omitempty"`

	// Inflation is kept as a float so that a missing or malformed rate
	// (.nan in YAML) can be detected and replaced before it reaches money math.
	Inflation float64 `yaml:"inflation" json:"inflation"`

	// Spending is the after-tax amount needed each retirement year.
	Spending decimal.Decimal `yaml:"spending" json:"spending"`

	Balances      Balances      `yaml:"balances" json:"balances"`
	Returns       Returns       `yaml:"returns" json:"returns"`
	Contributions Contributions `yaml:"contributions" json:"contributions"`
	Withholding   Withholding   `yaml:"withholding" json:"withholding"`

	OtherTaxableIncome    decimal.Decimal `yaml:"other_taxable_income" json:"other_taxable_income"`
	OtherNonTaxableIncome decimal.Decimal `yaml:"other_non_taxable_income" json:"other_non_taxable_income"`

	UseSavings     *bool `yaml:"use_savings,omitempty" json:"use_savings,omitempty"`
	UseRoth        *bool `yaml:"use_roth,omitempty" json:"use_roth,omitempty"`
	UseTaxDeferred *bool `yaml:"use_tax_deferred,omitempty" json:"use_tax_deferred,omitempty"`
	UseRMD         *bool `yaml:"use_rmd,omitempty" json:"use_rmd,omitempty"`

	WithdrawalOrder []AccountType `yaml:"withdrawal_order,omitempty" json:"withdrawal_order,omitempty"`
	InterestBasis   InterestBasis `yaml:"interest_basis,omitempty" json:"interest_basis,omitempty"`
	IncomeFrequency Frequency     `yaml:"income_frequency,omitempty" json:"income_frequency,omitempty"`
}

// Person holds the age-driven parameters for the subject or the spouse.
type Person struct {
	Age             int `yaml:"age" json:"age"`
	RetirementAge   int `yaml:"retirement_age" json:"retirement_age"`
	EndAge          int `yaml:"end_age,omitempty" json:"end_age,omitempty"`
	SSStartAge      int `yaml:"ss_start_age" json:"ss_start_age"`
	PensionStartAge int `yaml:"pension_start_age" json:"pension_start_age"`

	Salary       decimal.Decimal `yaml:"salary" json:"salary"`
	SalaryGrowth decimal.Decimal `yaml:"salary_growth" json:"salary_growth"`

	// SocialSecurity and Pension are annual gross amounts in start-year dollars.
	SocialSecurity decimal.Decimal `yaml:"social_security" json:"social_security"`
	SSCola         decimal.Decimal `yaml:"ss_cola" json:"ss_cola"`
	Pension        decimal.Decimal `yaml:"pension" json:"pension"`
	PensionCola    decimal.Decimal `yaml:"pension_cola" json:"pension_cola"`
}

// Balances are the opening account balances.
type Balances struct {
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
	TaxDeferred decimal.Decimal `yaml:"tax_deferred" json:"tax_deferred"`
	Roth        decimal.Decimal `yaml:"roth" json:"roth"`
}

// Returns are nominal annual growth rates per account.
type Returns struct {
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
	TaxDeferred decimal.Decimal `yaml:"tax_deferred" json:"tax_deferred"`
	Roth        decimal.Decimal `yaml:"roth" json:"roth"`
}

// Contributions are fractions of salary directed to each account while working.
type Contributions struct {
	PreTax        decimal.Decimal `yaml:"pre_tax" json:"pre_tax"`
	Roth          decimal.Decimal `yaml:"roth" json:"roth"`
	Savings       decimal.Decimal `yaml:"savings" json:"savings"`
	EmployerMatch decimal.Decimal `yaml:"employer_match" json:"employer_match"`
	// MatchCap limits the employer match to this fraction of salary.
	MatchCap decimal.Decimal `yaml:"match_cap" json:"match_cap"`
}

// Withholding rates applied to each gross income stream as it is posted.
type Withholding struct {
	Wages          decimal.Decimal `yaml:"wages" json:"wages"`
	Pension        decimal.Decimal `yaml:"pension" json:"pension"`
	SocialSecurity decimal.Decimal `yaml:"social_security" json:"social_security"`
	TaxDeferred    decimal.Decimal `yaml:"tax_deferred" json:"tax_deferred"`
}

// Years returns the number of simulated years, driven by the subject's end age.
func (in *Inputs) Years() int {
	end := in.Subject.EndAge
	if end == 0 {
		end = DefaultEndAge
	}
	if end < in.Subject.Age {
		return 0
	}
	return end - in.Subject.Age + 1
}

// DefaultEndAge is used when the subject's end age is not supplied.
const DefaultEndAge = 95

// Flag resolves an optional use-flag; unset flags are enabled.
func Flag(b *bool) bool {
	return b == nil || *b
}

// Order returns the configured withdrawal priority or the default waterfall.
func (in *Inputs) Order() []AccountType {
	if len(in.WithdrawalOrder) == 0 {
		return DefaultWithdrawalOrder
	}
	return in.WithdrawalOrder
}

// Basis returns the configured interest basis or BasisIgnoreDeposits.
func (in *Inputs) Basis() InterestBasis {
	if in.InterestBasis == "" {
		return BasisIgnoreDeposits
	}
	return in.InterestBasis
}

// Frequency returns the posting cadence for income streams, monthly by default.
func (in *Inputs) Frequency() Frequency {
	if in.IncomeFrequency == "" {
		return Monthly
	}
	return in.IncomeFrequency
}
