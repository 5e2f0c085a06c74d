package output

import (
	"bytes"
	"encoding/csv"
)

// CSVDetailedExporter provides the reconciled figures for every scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "Age", "SpouseAge", "SpendTarget",
		"Wages", "Pension", "SocialSecurity", "RMD",
		"SavingsWithdrawal", "RothWithdrawal", "TaxDeferredWithdrawal", "SolverIterations",
		"Interest", "TaxableSS", "TaxableIncome", "FederalTax", "Withheld", "Refund", "Payment",
		"Spent", "Surplus", "Unmet", "Shortfall",
		"EndingSavings", "EndingTaxDeferred", "EndingRoth",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		for _, y := range r.Years {
			row := []string{
				r.Name,
				intToString(y.Year),
				intToString(y.Age),
				intToString(y.SpouseAge),
				y.SpendTarget.StringFixed(2),
				y.Income.TotalWages().StringFixed(2),
				y.Income.TotalPension().StringFixed(2),
				y.Income.TotalSocialSecurity().StringFixed(2),
				y.Income.RMD.StringFixed(2),
				y.SavingsWithdrawal.StringFixed(2),
				y.RothWithdrawal.StringFixed(2),
				y.TaxDeferredWithdrawal.StringFixed(2),
				intToString(y.SolverIterations),
				y.InterestEarned.StringFixed(2),
				y.TaxableSS.StringFixed(2),
				y.TaxableIncome.StringFixed(2),
				y.FederalTax.StringFixed(2),
				y.Withheld.StringFixed(2),
				y.Refund.StringFixed(2),
				y.Payment.StringFixed(2),
				y.Spent.StringFixed(2),
				y.Surplus.StringFixed(2),
				y.Unmet.StringFixed(2),
				boolToString(y.Shortfall),
				y.EndingSavings.StringFixed(2),
				y.EndingTaxDeferred.StringFixed(2),
				y.EndingRoth.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
