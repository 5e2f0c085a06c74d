package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Years", "FirstYear", "LastYear", "TotalSpent", "TotalFederalTax", "TotalTaxDeferredWithdrawals", "TotalUnmet", "DepletionYear", "DepletionAge", "FinalBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	results := append([]*calculation.SimulationResult(nil), report.Results...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	for _, r := range results {
		s := summarize(r)
		row := []string{
			r.Name,
			intToString(len(r.Years)),
			intToString(s.firstYear),
			intToString(s.lastYear),
			s.spent.StringFixed(2),
			s.tax.StringFixed(2),
			s.taxDeferred.StringFixed(2),
			s.unmet.StringFixed(2),
			intToString(r.DepletionYear),
			intToString(r.DepletionAge),
			s.finalBalance.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// scenarioTotals are lifetime sums over a run.
type scenarioTotals struct {
	firstYear, lastYear int
	spent               decimal.Decimal
	tax                 decimal.Decimal
	taxDeferred         decimal.Decimal
	unmet               decimal.Decimal
	finalBalance        decimal.Decimal
}

func summarize(r *calculation.SimulationResult) scenarioTotals {
	s := scenarioTotals{
		spent:        decimal.Zero,
		tax:          decimal.Zero,
		taxDeferred:  decimal.Zero,
		unmet:        decimal.Zero,
		finalBalance: decimal.Zero,
	}
	if len(r.Years) == 0 {
		return s
	}
	s.firstYear = r.Years[0].Year
	s.lastYear = r.Years[len(r.Years)-1].Year
	for _, y := range r.Years {
		s.spent = s.spent.Add(y.Spent)
		s.tax = s.tax.Add(y.FederalTax)
		s.taxDeferred = s.taxDeferred.Add(y.TaxDeferredWithdrawal)
		s.unmet = s.unmet.Add(y.Unmet)
	}
	s.finalBalance = r.Years[len(r.Years)-1].TotalBalance()
	return s
}
