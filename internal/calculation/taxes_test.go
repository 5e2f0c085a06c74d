package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mfj2024(t *testing.T) BracketTable {
	t.Helper()
	b, err := TaxBrackets(domain.MarriedFilingJointly, 2024, decimal.Zero)
	require.NoError(t, err)
	return b
}

// TestTaxFromBrackets tests marginal tax on 2024 MFJ brackets
func TestTaxFromBrackets(t *testing.T) {
	brackets := mfj2024(t)

	tests := []struct {
		name     string
		taxable  string
		expected string
	}{
		{"zero income", "0", "0"},
		{"negative income", "-500", "0"},
		{"top of 10% bracket", "23200", "2320"},
		{"inside 12% bracket", "50000", "5536"},   // 2320 + 26800*0.12
		{"inside 22% bracket", "100000", "12106"}, // 2320 + 71100*0.12 + 5700*0.22
		{"top bracket", "1000000", "296125.5"},    // 196,669.5 through 731,200 then 37%
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxFromBrackets(dec(tt.taxable), brackets)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s want %s", got, tt.expected)
		})
	}
}

func TestTaxIsMonotonicWithMarginalSlope(t *testing.T) {
	brackets := mfj2024(t)

	prev := decimal.Zero
	step := dec("997.13")
	for x := decimal.Zero; x.LessThan(dec("900000")); x = x.Add(step) {
		tax := TaxFromBrackets(x, brackets)
		assert.False(t, tax.LessThan(prev), "tax decreased at %s", x)
		prev = tax
	}

	// Slope inside a bracket equals its marginal rate.
	slopes := map[string]string{"10000": "0.10", "30000": "0.12", "150000": "0.22", "800000": "0.37"}
	for at, rate := range slopes {
		x := dec(at)
		delta := TaxFromBrackets(x.Add(dec("100")), brackets).Sub(TaxFromBrackets(x, brackets))
		assert.True(t, delta.Equal(dec(rate).Mul(dec("100"))), "slope at %s: %s", at, delta)
	}
}

func TestBracketTableValidate(t *testing.T) {
	assert.NoError(t, mfj2024(t).Validate())
	single, err := TaxBrackets(domain.Single, 2030, dec("0.03"))
	require.NoError(t, err)
	assert.NoError(t, single.Validate())

	invalid := map[string]BracketTable{
		"empty": {},
		"unbounded middle": {
			top(0.10),
			top(0.20),
		},
		"bounded last": {
			bounded(0.10, 1000),
			bounded(0.20, 2000),
		},
		"decreasing ceilings": {
			bounded(0.10, 2000),
			bounded(0.20, 1000),
			top(0.30),
		},
		"rate above one": {
			bounded(1.5, 1000),
			top(0.30),
		},
	}
	for name, table := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, table.Validate(), domain.ErrInvalidBracketTable)
		})
	}
}

func TestInflationIndexing(t *testing.T) {
	brackets, err := TaxBrackets(domain.MarriedFilingJointly, 2026, dec("0.03"))
	require.NoError(t, err)
	assert.True(t, brackets[0].Ceiling.Decimal.Equal(dec("24612.88")), "got %s", brackets[0].Ceiling.Decimal)
	assert.False(t, brackets[len(brackets)-1].Ceiling.Valid)

	std, err := StandardDeduction(domain.MarriedFilingJointly, 2026, dec("0.03"))
	require.NoError(t, err)
	assert.True(t, std.Equal(dec("30978.28")), "got %s", std)

	std, err = StandardDeduction(domain.Single, 2024, dec("0.03"))
	require.NoError(t, err)
	assert.True(t, std.Equal(dec("14600")))

	// Years before the base table deflate.
	brackets, err = TaxBrackets(domain.MarriedFilingJointly, 2020, dec("0.03"))
	require.NoError(t, err)
	assert.True(t, brackets[0].Ceiling.Decimal.Equal(dec("20612.90")), "got %s", brackets[0].Ceiling.Decimal)
	std, err = StandardDeduction(domain.MarriedFilingJointly, 2020, dec("0.03"))
	require.NoError(t, err)
	assert.True(t, std.Equal(dec("25943.82")), "got %s", std)

	// The base table is not mutated by indexing.
	assert.True(t, mfj2024(t)[0].Ceiling.Decimal.Equal(dec("23200")))

	_, err = TaxBrackets("head_of_household", 2024, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidFilingStatus)
	_, err = StandardDeduction("", 2024, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidFilingStatus)
}

func TestAdditionalStandardDeduction(t *testing.T) {
	assert.True(t, AdditionalStandardDeduction(domain.MarriedFilingJointly, 2, 2024, decimal.Zero).Equal(dec("3100")))
	assert.True(t, AdditionalStandardDeduction(domain.Single, 1, 2024, decimal.Zero).Equal(dec("1950")))
	assert.True(t, AdditionalStandardDeduction(domain.Single, 0, 2024, decimal.Zero).IsZero())
	assert.True(t, AdditionalStandardDeduction(domain.MarriedFilingJointly, 1, 2025, dec("0.10")).Equal(dec("1705")))
}

func TestElectiveDeferralLimit(t *testing.T) {
	assert.True(t, ElectiveDeferralLimit(45, 2024, decimal.Zero).Equal(dec("23000")))
	assert.True(t, ElectiveDeferralLimit(50, 2024, decimal.Zero).Equal(dec("30500")))
	assert.True(t, ElectiveDeferralLimit(40, 2025, dec("0.02")).Equal(dec("23460")))
}

func TestFederalTaxCalculator(t *testing.T) {
	calc, err := NewFederalTaxCalculator(domain.MarriedFilingJointly, 2024, decimal.Zero, 0)
	require.NoError(t, err)
	assert.True(t, calc.StandardDeduction.Equal(dec("29200")))

	res := calc.Calculate(dec("100000"), decimal.Zero)
	assert.True(t, res.TaxableIncome.Equal(dec("70800")))
	assert.True(t, res.Tax.Equal(dec("8032")), "got %s", res.Tax) // 2320 + 47600*0.12

	below := calc.Calculate(dec("20000"), decimal.Zero)
	assert.True(t, below.TaxableIncome.IsZero())
	assert.True(t, below.Tax.IsZero())

	seniors, err := NewFederalTaxCalculator(domain.MarriedFilingJointly, 2024, decimal.Zero, 2)
	require.NoError(t, err)
	assert.True(t, seniors.StandardDeduction.Equal(dec("32300")))

	_, err = NewFederalTaxCalculator("joint-ish", 2024, decimal.Zero, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidFilingStatus)
}
