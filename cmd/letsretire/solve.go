package main

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	"github.com/danbrewer/LetsRetire-sub001/internal/output"
	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

func newSolveCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <target-net> <ss-gross> [savings] [other-taxable]",
		Short: "Find the tax-deferred withdrawal that nets a target after federal tax",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts := make([]decimal.Decimal, 4)
			names := []string{"target-net", "ss-gross", "savings", "other-taxable"}
			for i, a := range args {
				m, err := money.NewMoneyFromString(a)
				if err != nil {
					return fmt.Errorf("%s: %w: %q", names[i], domain.ErrInvalidAmount, a)
				}
				if m.IsNegative() {
					return fmt.Errorf("%s: %w: must not be negative", names[i], domain.ErrInvalidAmount)
				}
				amounts[i] = m.Decimal
			}
			target, ss, savings, other := amounts[0], amounts[1], amounts[2], amounts[3]

			status, err := domain.ParseFilingStatus(s.v.GetString("filing-status"))
			if err != nil {
				return err
			}
			rate, ok := money.RateFromFloat(s.v.GetFloat64("inflation"))
			if !ok {
				s.logger.Warn("inflation rate is not a number; tax tables are not indexed")
			}
			yearIndex := s.v.GetInt("year-index")
			year := calculation.BaseTaxYear + yearIndex
			// The benefit is quoted in base-year dollars and receives the same COLA as the tables.
			ss = calculation.ApplyCOLA(ss, rate, yearIndex)
			calc, err := calculation.NewFederalTaxCalculator(status, year, rate, s.v.GetInt("seniors"))
			if err != nil {
				return err
			}

			tc := calculation.TaxContext{
				Calculator:     calc,
				OrdinaryIncome: other,
				SocialSecurity: ss,
				CashIncome:     ss.Add(savings).Add(other),
			}
			res := calculation.SolveWithdrawal(target, tc)
			if !res.Converged {
				s.logger.Error("bisection did not converge", "iterations", res.Iterations)
			}
			writeSolution(cmd.OutOrStdout(), year, status, target, savings, other, res)
			return nil
		},
	}
	cmd.Flags().Int("year-index", 0, "years after "+fmt.Sprint(calculation.BaseTaxYear)+" used to index the tax tables and the benefit")
	cmd.Flags().Float64("inflation", 0, "annual inflation used to index the tax tables and as the benefit COLA")
	cmd.Flags().String("filing-status", string(domain.MarriedFilingJointly), "mfj or single")
	cmd.Flags().Int("seniors", 0, "filers aged 65 or older")
	for _, name := range []string{"year-index", "inflation", "filing-status", "seniors"} {
		_ = s.v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func writeSolution(w io.Writer, year int, status domain.FilingStatus, target, savings, other decimal.Decimal, res calculation.SolveResult) {
	tax := res.Evaluation.Tax
	convergence := "converged"
	if !res.Converged {
		convergence = "not converged"
	}
	rows := []struct {
		label string
		value string
	}{
		{"Tax year", fmt.Sprintf("%d (%s)", year, status)},
		{"Target net income", output.FormatCurrency(target)},
		{"Social Security (gross)", output.FormatCurrency(tax.SocialSecurity.Benefit)},
		{"Savings draw", output.FormatCurrency(savings)},
		{"Other taxable income", output.FormatCurrency(other)},
		{"Tax-deferred withdrawal", output.FormatCurrency(res.Amount)},
		{"Provisional income", output.FormatCurrency(tax.SocialSecurity.Provisional)},
		{"Taxable Social Security", output.FormatCurrency(tax.SocialSecurity.Taxable)},
		{"Deduction", output.FormatCurrency(tax.Deduction)},
		{"Taxable income", output.FormatCurrency(tax.TaxableIncome)},
		{"Federal tax", output.FormatCurrency(tax.Tax)},
		{"Net income", output.FormatCurrency(res.Evaluation.NetIncome)},
		{"Iterations", fmt.Sprintf("%d (%s)", res.Iterations, convergence)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-25s %s\n", r.label+":", r.value)
	}
}
