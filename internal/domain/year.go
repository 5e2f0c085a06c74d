package domain

import (
	"github.com/shopspring/decimal"
)

// Demographics is the age and eligibility snapshot for one simulated year.
type Demographics struct {
	Age                   int          `json:"age"`
	SpouseAge             int          `json:"spouse_age,omitempty"`
	HasSpouse             bool         `json:"has_spouse"`
	RetirementAge         int          `json:"retirement_age"`
	SpouseRetirementAge   int          `json:"spouse_retirement_age,omitempty"`
	SSStartAge            int          `json:"ss_start_age"`
	SpouseSSStartAge      int          `json:"spouse_ss_start_age,omitempty"`
	PensionStartAge       int          `json:"pension_start_age"`
	SpousePensionStartAge int          `json:"spouse_pension_start_age,omitempty"`
	FilingStatus          FilingStatus `json:"filing_status"`
	// RetirementYearIndex counts years since the subject retired; it is
	// negative while the subject is still working.
	RetirementYearIndex int `json:"retirement_year_index"`
}

// Retired reports whether the subject has stopped drawing wages.
func (d Demographics) Retired() bool { return d.Age >= d.RetirementAge }

// SpouseRetired reports whether the spouse has stopped drawing wages.
func (d Demographics) SpouseRetired() bool {
	return !d.HasSpouse || d.SpouseAge >= d.SpouseRetirementAge
}

// EligibleForSS reports whether the subject collects Social Security this year.
func (d Demographics) EligibleForSS() bool { return d.Age >= d.SSStartAge }

// SpouseEligibleForSS reports whether the spouse collects Social Security this year.
func (d Demographics) SpouseEligibleForSS() bool {
	return d.HasSpouse && d.SpouseAge >= d.SpouseSSStartAge
}

// EligibleForPension reports whether the subject's pension is in payment.
func (d Demographics) EligibleForPension() bool { return d.Age >= d.PensionStartAge }

// SpouseEligibleForPension reports whether the spouse's pension is in payment.
func (d Demographics) SpouseEligibleForPension() bool {
	return d.HasSpouse && d.SpouseAge >= d.SpousePensionStartAge
}

// Seniors counts filers aged 65 or older, for the additional standard deduction.
func (d Demographics) Seniors() int {
	n := 0
	if d.Age >= 65 {
		n++
	}
	if d.HasSpouse && d.FilingStatus == MarriedFilingJointly && d.SpouseAge >= 65 {
		n++
	}
	return n
}

// FiscalData holds the per-year economic settings.
type FiscalData struct {
	TaxYear   int             `json:"tax_year"`
	YearIndex int             `json:"year_index"`
	Inflation decimal.Decimal `json:"inflation"`
	Returns   Returns         `json:"returns"`
	// SpendTarget is already inflated to this year's dollars.
	SpendTarget     decimal.Decimal `json:"spend_target"`
	UseSavings      bool            `json:"use_savings"`
	UseRoth         bool            `json:"use_roth"`
	UseTaxDeferred  bool            `json:"use_tax_deferred"`
	UseRMD          bool            `json:"use_rmd"`
	WithdrawalOrder []AccountType   `json:"withdrawal_order"`
	InterestBasis   InterestBasis   `json:"interest_basis"`
	IncomeFrequency Frequency       `json:"income_frequency"`
	Withholding     Withholding     `json:"withholding"`
}

// Enabled reports whether the account may fund spending this year.
func (f FiscalData) Enabled(account AccountType) bool {
	switch account {
	case AccountSavings:
		return f.UseSavings
	case AccountRoth:
		return f.UseRoth
	case AccountTaxDeferred:
		return f.UseTaxDeferred
	}
	return false
}

// Rate returns the growth rate configured for the account.
func (f FiscalData) Rate(account AccountType) decimal.Decimal {
	switch account {
	case AccountSavings:
		return f.Returns.Savings
	case AccountRoth:
		return f.Returns.Roth
	case AccountTaxDeferred:
		return f.Returns.TaxDeferred
	}
	return decimal.Zero
}

// IncomeStreams are the fixed, non-discretionary amounts for one year.
// All values are gross annual amounts in that year's dollars.
type IncomeStreams struct {
	Wages                decimal.Decimal `json:"wages"`
	SpouseWages          decimal.Decimal `json:"spouse_wages"`
	PreTaxContribution   decimal.Decimal `json:"pre_tax_contribution"`
	RothContribution     decimal.Decimal `json:"roth_contribution"`
	SavingsContribution  decimal.Decimal `json:"savings_contribution"`
	EmployerMatch        decimal.Decimal `json:"employer_match"`
	Pension              decimal.Decimal `json:"pension"`
	SpousePension        decimal.Decimal `json:"spouse_pension"`
	SocialSecurity       decimal.Decimal `json:"social_security"`
	SpouseSocialSecurity decimal.Decimal `json:"spouse_social_security"`
	RMD                  decimal.Decimal `json:"rmd"`
	OtherTaxable         decimal.Decimal `json:"other_taxable"`
	OtherNonTaxable      decimal.Decimal `json:"other_non_taxable"`
	// SavingsInterest is the projected interest on savings, taxable this year.
	SavingsInterest decimal.Decimal `json:"savings_interest"`
}

// TotalWages is combined gross wages.
func (s IncomeStreams) TotalWages() decimal.Decimal { return s.Wages.Add(s.SpouseWages) }

// TaxableWages is combined wages less pre-tax deferrals.
func (s IncomeStreams) TaxableWages() decimal.Decimal {
	return s.TotalWages().Sub(s.PreTaxContribution)
}

// TotalPension is combined pension income.
func (s IncomeStreams) TotalPension() decimal.Decimal { return s.Pension.Add(s.SpousePension) }

// TotalSocialSecurity is combined gross Social Security.
func (s IncomeStreams) TotalSocialSecurity() decimal.Decimal {
	return s.SocialSecurity.Add(s.SpouseSocialSecurity)
}

// Contributions is the part of wages diverted from spendable cash.
func (s IncomeStreams) Contributions() decimal.Decimal {
	return s.PreTaxContribution.Add(s.RothContribution).Add(s.SavingsContribution)
}

// OtherTaxableIncome sums the fixed taxable income other than Social Security.
func (s IncomeStreams) OtherTaxableIncome() decimal.Decimal {
	return s.TaxableWages().
		Add(s.TotalPension()).
		Add(s.RMD).
		Add(s.OtherTaxable).
		Add(s.SavingsInterest)
}

// GrossCash is the fixed income that lands as spendable cash before withholding.
func (s IncomeStreams) GrossCash() decimal.Decimal {
	return s.TotalWages().Sub(s.Contributions()).
		Add(s.TotalPension()).
		Add(s.TotalSocialSecurity()).
		Add(s.RMD).
		Add(s.OtherTaxable).
		Add(s.OtherNonTaxable)
}

// YearContext bundles the derived inputs the withdrawal engine needs for a year.
type YearContext struct {
	Demographics Demographics  `json:"demographics"`
	Fiscal       FiscalData    `json:"fiscal"`
	Income       IncomeStreams `json:"income"`
}

// YearResult is the reconciled outcome of one simulated year.
type YearResult struct {
	Year      int `json:"year"`
	YearIndex int `json:"year_index"`
	Age       int `json:"age"`
	SpouseAge int `json:"spouse_age,omitempty"`

	Income IncomeStreams `json:"income"`

	SavingsWithdrawal     decimal.Decimal `json:"savings_withdrawal"`
	RothWithdrawal        decimal.Decimal `json:"roth_withdrawal"`
	TaxDeferredWithdrawal decimal.Decimal `json:"tax_deferred_withdrawal"`
	SolverIterations      int             `json:"solver_iterations"`
	SolverConverged       bool            `json:"solver_converged"`

	InterestEarned    decimal.Decimal `json:"interest_earned"`
	TaxableSS         decimal.Decimal `json:"taxable_social_security"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	FederalTax        decimal.Decimal `json:"federal_tax"`
	Withheld          decimal.Decimal `json:"withheld"`
	Refund            decimal.Decimal `json:"refund"`
	Payment           decimal.Decimal `json:"payment"`

	SpendTarget decimal.Decimal `json:"spend_target"`
	Spent       decimal.Decimal `json:"spent"`
	Surplus     decimal.Decimal `json:"surplus"`
	Unmet       decimal.Decimal `json:"unmet"`
	Shortfall   bool            `json:"shortfall"`

	EndingSavings     decimal.Decimal `json:"ending_savings"`
	EndingTaxDeferred decimal.Decimal `json:"ending_tax_deferred"`
	EndingRoth        decimal.Decimal `json:"ending_roth"`
}

// TotalBalance is the sum of the three spendable accounts at year end.
func (r YearResult) TotalBalance() decimal.Decimal {
	return r.EndingSavings.Add(r.EndingTaxDeferred).Add(r.EndingRoth)
}

// TotalWithdrawals is the discretionary draw across all accounts, excluding RMD.
func (r YearResult) TotalWithdrawals() decimal.Decimal {
	return r.SavingsWithdrawal.Add(r.RothWithdrawal).Add(r.TaxDeferredWithdrawal)
}

// NetIncome is gross cash income plus withdrawals less the year's federal tax.
func (r YearResult) NetIncome() decimal.Decimal {
	return r.Income.GrossCash().Add(r.TotalWithdrawals()).Sub(r.FederalTax)
}
