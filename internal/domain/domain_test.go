package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnumsDecodeFromYAML(t *testing.T) {
	src := `
name: enums
start_year: 2025
filing_status: Married
interest_basis: daily_rolling
income_frequency: QUARTERLY
withdrawal_order: [roth, tax_deferred, savings]
spending: 61000.50
subject:
  age: 64
  retirement_age: 65
`
	var in Inputs
	require.NoError(t, yaml.Unmarshal([]byte(src), &in))

	assert.Equal(t, MarriedFilingJointly, in.FilingStatus)
	assert.Equal(t, BasisDailyRolling, in.InterestBasis)
	assert.Equal(t, Quarterly, in.IncomeFrequency)
	assert.Equal(t, []AccountType{AccountRoth, AccountTaxDeferred, AccountSavings}, in.WithdrawalOrder)
	assert.True(t, in.Spending.Equal(decimal.RequireFromString("61000.50")))
}

func TestEnumsRejectUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"filing status", "filing_status: widowed", ErrInvalidFilingStatus},
		{"interest basis", "interest_basis: compounding", ErrInvalidInterestBasis},
		{"frequency", "income_frequency: weekly", ErrInvalidFrequency},
		{"account type", "withdrawal_order: [brokerage]", ErrInvalidAccountType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Inputs
			err := yaml.Unmarshal([]byte(tt.src), &in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseFilingStatus(t *testing.T) {
	for _, s := range []string{"mfj", "MFJ", " joint ", "married_filing_jointly"} {
		fs, err := ParseFilingStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, MarriedFilingJointly, fs)
	}
	fs, err := ParseFilingStatus("single")
	require.NoError(t, err)
	assert.Equal(t, Single, fs)

	_, err = ParseFilingStatus("hoh")
	assert.ErrorIs(t, err, ErrInvalidFilingStatus)
}

func TestCategoryAndTypeValidity(t *testing.T) {
	assert.True(t, CategoryRMD.Valid())
	assert.False(t, Category("gift").Valid())
	assert.True(t, Deposit.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.True(t, AccountRoth.Spendable())
	assert.False(t, AccountWithholdings.Spendable())
	assert.True(t, AccountDisbursement.Valid())
}

func TestInputsDefaults(t *testing.T) {
	in := Inputs{Subject: Person{Age: 60}}
	assert.Equal(t, 36, in.Years())
	assert.Equal(t, DefaultWithdrawalOrder, in.Order())
	assert.Equal(t, BasisIgnoreDeposits, in.Basis())
	assert.Equal(t, Monthly, in.Frequency())

	in.Subject.EndAge = 62
	assert.Equal(t, 3, in.Years())
	in.Subject.EndAge = 55
	assert.Zero(t, in.Years())

	off, on := false, true
	assert.True(t, Flag(nil))
	assert.True(t, Flag(&on))
	assert.False(t, Flag(&off))
}

func TestDemographics(t *testing.T) {
	d := Demographics{
		Age: 66, RetirementAge: 65, SSStartAge: 67, PensionStartAge: 62,
		HasSpouse: true, SpouseAge: 64, SpouseRetirementAge: 66, SpouseSSStartAge: 62,
		FilingStatus: MarriedFilingJointly,
	}
	assert.True(t, d.Retired())
	assert.False(t, d.SpouseRetired())
	assert.False(t, d.EligibleForSS())
	assert.True(t, d.SpouseEligibleForSS())
	assert.True(t, d.EligibleForPension())
	assert.Equal(t, 1, d.Seniors())

	d.SpouseAge = 65
	assert.Equal(t, 2, d.Seniors())
	d.FilingStatus = Single
	assert.Equal(t, 1, d.Seniors())
}

func TestFiscalDataAccessors(t *testing.T) {
	f := FiscalData{
		UseSavings: true,
		Returns:    Returns{Savings: decimal.NewFromFloat(0.02), Roth: decimal.NewFromFloat(0.06)},
	}
	assert.True(t, f.Enabled(AccountSavings))
	assert.False(t, f.Enabled(AccountRoth))
	assert.False(t, f.Enabled(AccountDisbursement))
	assert.True(t, f.Rate(AccountRoth).Equal(decimal.NewFromFloat(0.06)))
	assert.True(t, f.Rate(AccountWithholdings).IsZero())
}

func TestIncomeStreamTotals(t *testing.T) {
	d := decimal.RequireFromString
	s := IncomeStreams{
		Wages:               d("80000"),
		SpouseWages:         d("20000"),
		PreTaxContribution:  d("10000"),
		RothContribution:    d("2000"),
		SavingsContribution: d("3000"),
		Pension:             d("5000"),
		SocialSecurity:      d("1000"),
		OtherNonTaxable:     d("500"),
	}
	assert.True(t, s.TaxableWages().Equal(d("90000")))
	assert.True(t, s.Contributions().Equal(d("15000")))
	assert.True(t, s.GrossCash().Equal(d("91500")), "got %s", s.GrossCash())
}
