package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("testdata", "household.yaml"))
	require.NoError(t, err)
	require.Len(t, config.Scenarios, 2)

	couple := config.Scenarios[0]
	assert.Equal(t, "Retire at 62", couple.Name)
	assert.Equal(t, domain.MarriedFilingJointly, couple.FilingStatus)
	require.NotNil(t, couple.Spouse)
	assert.Equal(t, 58, couple.Spouse.Age)
	assert.True(t, couple.Balances.TaxDeferred.Equal(decimal.NewFromInt(850000)))
	assert.True(t, couple.Withholding.SocialSecurity.Equal(decimal.RequireFromString("0.07")))
	assert.Equal(t, domain.BasisAverageBalance, couple.InterestBasis)
	assert.InDelta(t, 0.025, couple.Inflation, 1e-12)

	single := config.Scenarios[1]
	assert.True(t, math.IsNaN(single.Inflation))
	assert.False(t, domain.Flag(single.UseRoth))
	assert.True(t, domain.Flag(single.UseSavings))
	assert.Equal(t, []domain.AccountType{domain.AccountSavings, domain.AccountTaxDeferred}, single.Order())
	assert.Equal(t, 25, single.Years())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
scenarios:
	- name: "tabs are not allowed"
		spending: "not-a-number"
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_UnknownEnum(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("scenarios:\n  - name: x\n    filing_status: hoh\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidFilingStatus)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(createValidTestConfiguration()))
}

func TestValidateConfiguration_NoScenarios(t *testing.T) {
	err := NewInputParser().ValidateConfiguration(&Configuration{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios provided")
}

func TestValidateConfiguration_DuplicateNames(t *testing.T) {
	config := createValidTestConfiguration()
	dup := *config.Scenarios[0]
	config.Scenarios = append(config.Scenarios, &dup)

	err := NewInputParser().ValidateConfiguration(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestValidateInputs_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *domain.Inputs)
		want   string
	}{
		{"empty name", func(in *domain.Inputs) { in.Name = "" }, "scenario name is required"},
		{"start year", func(in *domain.Inputs) { in.StartYear = 1700 }, "start year"},
		{"filing status", func(in *domain.Inputs) { in.FilingStatus = "" }, "invalid filing status"},
		{"zero age", func(in *domain.Inputs) { in.Subject.Age = 0 }, "age must be between"},
		{"end before age", func(in *domain.Inputs) { in.Subject.EndAge = 50 }, "end age cannot be before"},
		{"early social security", func(in *domain.Inputs) { in.Subject.SSStartAge = 60 }, "between 62 and 70"},
		{"spouse on single return", func(in *domain.Inputs) { in.FilingStatus = domain.Single }, "a spouse requires"},
		{"bad spouse", func(in *domain.Inputs) { in.Spouse.Age = 200 }, "spouse validation failed"},
		{"extreme deflation", func(in *domain.Inputs) { in.Inflation = -0.2 }, "inflation rate"},
		{"infinite inflation", func(in *domain.Inputs) { in.Inflation = math.Inf(1) }, "inflation rate"},
		{"negative spending", func(in *domain.Inputs) { in.Spending = decimal.NewFromInt(-1) }, "spending cannot be negative"},
		{"negative balance", func(in *domain.Inputs) { in.Balances.Roth = decimal.NewFromInt(-1) }, "roth balance"},
		{"total loss return", func(in *domain.Inputs) { in.Returns.Savings = decimal.NewFromInt(-1) }, "savings return"},
		{"withholding above one", func(in *domain.Inputs) { in.Withholding.Pension = decimal.RequireFromString("1.5") }, "pension withholding"},
		{"contributions above salary", func(in *domain.Inputs) {
			in.Contributions.PreTax = decimal.RequireFromString("0.6")
			in.Contributions.Savings = decimal.RequireFromString("0.6")
		}, "cannot exceed 100%"},
		{"unspendable account in order", func(in *domain.Inputs) {
			in.WithdrawalOrder = []domain.AccountType{domain.AccountWithholdings}
		}, "cannot fund spending"},
		{"repeated account in order", func(in *domain.Inputs) {
			in.WithdrawalOrder = []domain.AccountType{domain.AccountRoth, domain.AccountRoth}
		}, "twice"},
		{"unknown basis", func(in *domain.Inputs) { in.InterestBasis = "simple" }, "invalid interest basis"},
		{"unknown frequency", func(in *domain.Inputs) { in.IncomeFrequency = "weekly" }, "invalid posting frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := createValidTestConfiguration().Scenarios[0]
			tt.mutate(in)
			err := NewInputParser().ValidateInputs(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateInputs_AcceptsNaNInflation(t *testing.T) {
	in := createValidTestConfiguration().Scenarios[0]
	in.Inflation = math.NaN()
	assert.NoError(t, NewInputParser().ValidateInputs(in))
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))
	assert.Len(t, config.Scenarios, 2)

	// The example survives a round trip through YAML.
	data, err := parser.Encode(config)
	require.NoError(t, err)
	decoded, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, decoded.Scenarios, 2)
	assert.Equal(t, config.Scenarios[1].Name, decoded.Scenarios[1].Name)
	assert.True(t, decoded.Scenarios[0].Spending.Equal(config.Scenarios[0].Spending))
	assert.False(t, domain.Flag(decoded.Scenarios[1].UseRoth))
}

func createValidTestConfiguration() *Configuration {
	return &Configuration{Scenarios: []*domain.Inputs{{
		Name:         "valid",
		StartYear:    2025,
		FilingStatus: domain.MarriedFilingJointly,
		Subject: domain.Person{
			Age:            62,
			RetirementAge:  62,
			EndAge:         90,
			SSStartAge:     67,
			SocialSecurity: decimal.NewFromInt(30000),
		},
		Spouse:    &domain.Person{Age: 60, RetirementAge: 60},
		Inflation: 0.03,
		Spending:  decimal.NewFromInt(70000),
		Balances:  domain.Balances{Savings: decimal.NewFromInt(10000), TaxDeferred: decimal.NewFromInt(500000)},
	}}}
}
