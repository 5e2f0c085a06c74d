package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	"github.com/danbrewer/LetsRetire-sub001/internal/ledger"
	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// InflationRate converts the configured inflation to a decimal. A NaN or
// infinite rate is replaced by zero and reported through the logger.
func InflationRate(in *domain.Inputs, logger Logger) decimal.Decimal {
	rate, ok := money.RateFromFloat(in.Inflation)
	if !ok {
		logger.Warnf("inflation rate %v is not a finite number; applying no inflation adjustment", in.Inflation)
	}
	return rate
}

// BuildYearContext derives the demographics, fiscal settings and fixed income
// streams for one simulated year. The ledger year supplies the prior
// tax-deferred balance for the RMD and the projected savings interest.
func BuildYearContext(in *domain.Inputs, yearIndex int, y *ledger.AccountingYear, inflation decimal.Decimal) (domain.YearContext, error) {
	if !in.FilingStatus.Valid() {
		return domain.YearContext{}, fmt.Errorf("%w: %q", domain.ErrInvalidFilingStatus, in.FilingStatus)
	}
	taxYear := in.StartYear + yearIndex

	demo := domain.Demographics{
		Age:                 in.Subject.Age + yearIndex,
		RetirementAge:       in.Subject.RetirementAge,
		SSStartAge:          in.Subject.SSStartAge,
		PensionStartAge:     in.Subject.PensionStartAge,
		FilingStatus:        in.FilingStatus,
		RetirementYearIndex: in.Subject.Age + yearIndex - in.Subject.RetirementAge,
	}
	if in.Spouse != nil {
		demo.HasSpouse = true
		demo.SpouseAge = in.Spouse.Age + yearIndex
		demo.SpouseRetirementAge = in.Spouse.RetirementAge
		demo.SpouseSSStartAge = in.Spouse.SSStartAge
		demo.SpousePensionStartAge = in.Spouse.PensionStartAge
	}

	fiscal := domain.FiscalData{
		TaxYear:         taxYear,
		YearIndex:       yearIndex,
		Inflation:       inflation,
		Returns:         in.Returns,
		SpendTarget:     money.RoundCents(in.Spending.Mul(money.CompoundFactor(inflation, yearIndex))),
		UseSavings:      domain.Flag(in.UseSavings),
		UseRoth:         domain.Flag(in.UseRoth),
		UseTaxDeferred:  domain.Flag(in.UseTaxDeferred),
		UseRMD:          domain.Flag(in.UseRMD),
		WithdrawalOrder: in.Order(),
		InterestBasis:   in.Basis(),
		IncomeFrequency: in.Frequency(),
		Withholding:     in.Withholding,
	}

	income := domain.IncomeStreams{
		OtherTaxable:    money.RoundCents(in.OtherTaxableIncome.Mul(money.CompoundFactor(inflation, yearIndex))),
		OtherNonTaxable: money.RoundCents(in.OtherNonTaxableIncome.Mul(money.CompoundFactor(inflation, yearIndex))),
	}

	subject := personIncome(in.Subject, demo.Age, yearIndex, taxYear, inflation, in.Contributions)
	income.Wages = subject.wages
	income.Pension = subject.pension
	income.SocialSecurity = subject.socialSecurity
	income.PreTaxContribution = subject.preTax
	income.RothContribution = subject.roth
	income.SavingsContribution = subject.savings
	income.EmployerMatch = subject.match

	if in.Spouse != nil {
		spouse := personIncome(*in.Spouse, demo.SpouseAge, yearIndex, taxYear, inflation, in.Contributions)
		income.SpouseWages = spouse.wages
		income.SpousePension = spouse.pension
		income.SpouseSocialSecurity = spouse.socialSecurity
		income.PreTaxContribution = income.PreTaxContribution.Add(spouse.preTax)
		income.RothContribution = income.RothContribution.Add(spouse.roth)
		income.SavingsContribution = income.SavingsContribution.Add(spouse.savings)
		income.EmployerMatch = income.EmployerMatch.Add(spouse.match)
	}

	income.RMD = CalculateRMD(fiscal.UseRMD, demo.Age, y.StartingBalance(domain.AccountTaxDeferred))
	income.SavingsInterest = y.ProjectedInterest(domain.AccountSavings, fiscal.Returns.Savings)

	return domain.YearContext{Demographics: demo, Fiscal: fiscal, Income: income}, nil
}

type personStreams struct {
	wages, pension, socialSecurity decimal.Decimal
	preTax, roth, savings, match   decimal.Decimal
}

func personIncome(p domain.Person, age, yearIndex, taxYear int, inflation decimal.Decimal, c domain.Contributions) personStreams {
	out := personStreams{
		wages:          decimal.Zero,
		pension:        decimal.Zero,
		socialSecurity: decimal.Zero,
		preTax:         decimal.Zero,
		roth:           decimal.Zero,
		savings:        decimal.Zero,
		match:          decimal.Zero,
	}

	if age < p.RetirementAge {
		out.wages = money.RoundCents(p.Salary.Mul(money.CompoundFactor(p.SalaryGrowth, yearIndex)))

		// Pre-tax deferrals fill the elective limit first; Roth takes what remains.
		limit := ElectiveDeferralLimit(age, taxYear, inflation)
		out.preTax = decimal.Min(money.RoundCents(out.wages.Mul(c.PreTax)), limit)
		out.roth = decimal.Min(money.RoundCents(out.wages.Mul(c.Roth)), limit.Sub(out.preTax))
		out.savings = money.RoundCents(out.wages.Mul(c.Savings))

		matched := decimal.Min(out.preTax.Add(out.roth), money.RoundCents(out.wages.Mul(c.MatchCap)))
		out.match = money.RoundCents(matched.Mul(c.EmployerMatch))
	}
	if age >= p.PensionStartAge && p.Pension.IsPositive() {
		out.pension = ApplyCOLA(p.Pension, p.PensionCola, age-p.PensionStartAge)
	}
	if age >= p.SSStartAge && p.SocialSecurity.IsPositive() {
		out.socialSecurity = ApplyCOLA(p.SocialSecurity, p.SSCola, yearIndex)
	}
	return out
}
