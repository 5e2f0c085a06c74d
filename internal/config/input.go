package config

import (
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// Configuration is the top-level input file: one or more retirement plans.
type Configuration struct {
	Scenarios []*domain.Inputs `yaml:"scenarios" json:"scenarios"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, in := range config.Scenarios {
		if in == nil {
			return fmt.Errorf("scenario %d is empty", i)
		}
		if err := ip.ValidateInputs(in); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[in.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, in.Name)
		}
		seen[in.Name] = true
	}
	return nil
}

// ValidateInputs validates a single plan
func (ip *InputParser) ValidateInputs(in *domain.Inputs) error {
	if in.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if in.StartYear < 1900 || in.StartYear > 2200 {
		return fmt.Errorf("start year must be between 1900 and 2200")
	}
	if !in.FilingStatus.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFilingStatus, in.FilingStatus)
	}

	if err := ip.validatePerson(&in.Subject); err != nil {
		return fmt.Errorf("subject validation failed: %w", err)
	}
	if in.Spouse != nil {
		if in.FilingStatus != domain.MarriedFilingJointly {
			return fmt.Errorf("a spouse requires filing status %q", domain.MarriedFilingJointly)
		}
		if err := ip.validatePerson(in.Spouse); err != nil {
			return fmt.Errorf("spouse validation failed: %w", err)
		}
	}

	// NaN inflation is accepted here and replaced by zero at run time.
	if !math.IsNaN(in.Inflation) && (math.IsInf(in.Inflation, 0) || in.Inflation < -0.10 || in.Inflation > 0.5) {
		return fmt.Errorf("inflation rate must be between -10%% and 50%%")
	}
	if in.Spending.IsNegative() {
		return fmt.Errorf("spending cannot be negative")
	}
	if in.OtherTaxableIncome.IsNegative() || in.OtherNonTaxableIncome.IsNegative() {
		return fmt.Errorf("other income cannot be negative")
	}

	balances := map[string]decimal.Decimal{
		"savings":      in.Balances.Savings,
		"tax-deferred": in.Balances.TaxDeferred,
		"roth":         in.Balances.Roth,
	}
	for name, b := range balances {
		if b.IsNegative() {
			return fmt.Errorf("%s balance cannot be negative", name)
		}
	}
	returns := map[string]decimal.Decimal{
		"savings":      in.Returns.Savings,
		"tax-deferred": in.Returns.TaxDeferred,
		"roth":         in.Returns.Roth,
	}
	for name, r := range returns {
		if r.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return fmt.Errorf("%s return must be greater than -100%%", name)
		}
	}

	fractions := map[string]decimal.Decimal{
		"pre-tax contribution":        in.Contributions.PreTax,
		"roth contribution":           in.Contributions.Roth,
		"savings contribution":        in.Contributions.Savings,
		"employer match":              in.Contributions.EmployerMatch,
		"match cap":                   in.Contributions.MatchCap,
		"wage withholding":            in.Withholding.Wages,
		"pension withholding":         in.Withholding.Pension,
		"social security withholding": in.Withholding.SocialSecurity,
		"tax-deferred withholding":    in.Withholding.TaxDeferred,
	}
	for name, f := range fractions {
		if !isFraction(f) {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	c := in.Contributions
	if c.PreTax.Add(c.Roth).Add(c.Savings).GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("contributions cannot exceed 100%% of salary")
	}

	seen := make(map[domain.AccountType]bool)
	for _, a := range in.WithdrawalOrder {
		if !a.Spendable() {
			return fmt.Errorf("%w: %q cannot fund spending", domain.ErrInvalidAccountType, a)
		}
		if seen[a] {
			return fmt.Errorf("withdrawal order lists %q twice", a)
		}
		seen[a] = true
	}
	if in.InterestBasis != "" && !in.InterestBasis.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidInterestBasis, in.InterestBasis)
	}
	if in.IncomeFrequency != "" && !in.IncomeFrequency.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFrequency, in.IncomeFrequency)
	}

	return nil
}

// validatePerson validates the age and income parameters of one person
func (ip *InputParser) validatePerson(p *domain.Person) error {
	if p.Age <= 0 || p.Age > 120 {
		return fmt.Errorf("age must be between 1 and 120")
	}
	if p.RetirementAge < 0 || p.RetirementAge > 120 {
		return fmt.Errorf("retirement age must be between 0 and 120")
	}
	if p.EndAge != 0 && p.EndAge < p.Age {
		return fmt.Errorf("end age cannot be before current age")
	}
	if p.EndAge > 120 {
		return fmt.Errorf("end age cannot exceed 120")
	}
	if p.SocialSecurity.IsPositive() && (p.SSStartAge < 62 || p.SSStartAge > 70) {
		return fmt.Errorf("social security start age must be between 62 and 70")
	}
	if p.Salary.IsNegative() {
		return fmt.Errorf("salary cannot be negative")
	}
	if p.SocialSecurity.IsNegative() {
		return fmt.Errorf("social security benefit cannot be negative")
	}
	if p.Pension.IsNegative() {
		return fmt.Errorf("pension cannot be negative")
	}
	if p.SalaryGrowth.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("salary growth must be greater than -100%%")
	}
	if p.SSCola.IsNegative() || p.PensionCola.IsNegative() {
		return fmt.Errorf("COLA rates cannot be negative")
	}
	return nil
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *Configuration {
	d := decimal.RequireFromString
	off := false

	couple := &domain.Inputs{
		Name:         "Retire at 62",
		StartYear:    2025,
		FilingStatus: domain.MarriedFilingJointly,
		Subject: domain.Person{
			Age:             60,
			RetirementAge:   62,
			EndAge:          95,
			SSStartAge:      67,
			PensionStartAge: 62,
			Salary:          d("110000"),
			SalaryGrowth:    d("0.03"),
			SocialSecurity:  d("32307"),
			SSCola:          d("0.025"),
			Pension:         d("18000"),
		},
		Spouse: &domain.Person{
			Age:            58,
			RetirementAge:  60,
			SSStartAge:     67,
			Salary:         d("65000"),
			SalaryGrowth:   d("0.03"),
			SocialSecurity: d("21000"),
			SSCola:         d("0.025"),
		},
		Inflation: 0.025,
		Spending:  d("85000"),
		Balances: domain.Balances{
			Savings:     d("60000"),
			TaxDeferred: d("850000"),
			Roth:        d("120000"),
		},
		Returns: domain.Returns{
			Savings:     d("0.035"),
			TaxDeferred: d("0.06"),
			Roth:        d("0.06"),
		},
		Contributions: domain.Contributions{
			PreTax:        d("0.10"),
			Roth:          d("0.05"),
			Savings:       d("0.03"),
			EmployerMatch: d("0.5"),
			MatchCap:      d("0.06"),
		},
		Withholding: domain.Withholding{
			Wages:          d("0.15"),
			Pension:        d("0.10"),
			SocialSecurity: d("0.07"),
			TaxDeferred:    d("0.12"),
		},
		InterestBasis:   domain.BasisAverageBalance,
		IncomeFrequency: domain.Monthly,
	}

	noRoth := *couple
	noRoth.Name = "Preserve Roth"
	noRoth.UseRoth = &off
	noRoth.WithdrawalOrder = []domain.AccountType{domain.AccountSavings, domain.AccountTaxDeferred}

	return &Configuration{Scenarios: []*domain.Inputs{couple, &noRoth}}
}

// Encode renders a configuration back to YAML.
func (ip *InputParser) Encode(config *Configuration) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}
