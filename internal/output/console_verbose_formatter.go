package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	shortfallStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
)

// ConsoleVerboseFormatter renders the year-by-year table for every scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("RETIREMENT WITHDRAWAL & TAX RECONCILIATION"))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	for i, r := range report.Results {
		fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("SCENARIO %d: %s", i+1, r.Name)))
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if i < len(report.Inputs) && report.Inputs[i] != nil {
			fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
			for _, a := range GenerateAssumptions(report.Inputs[i]) {
				fmt.Fprintf(&buf, "• %s\n", mutedStyle.Render(a))
			}
			fmt.Fprintln(&buf)
		}
		writeYearTable(&buf, r)
		fmt.Fprintln(&buf)

		s := summarize(r)
		fmt.Fprintf(&buf, "Lifetime spending:    %s\n", FormatCurrency(s.spent))
		fmt.Fprintf(&buf, "Lifetime federal tax: %s\n", FormatCurrency(s.tax))
		fmt.Fprintf(&buf, "Final balance:        %s\n", FormatCurrency(s.finalBalance))
		if r.Depleted() {
			fmt.Fprintln(&buf, shortfallStyle.Render(fmt.Sprintf("Money runs out in %d at age %d", r.DepletionYear, r.DepletionAge)))
		} else {
			fmt.Fprintln(&buf, okStyle.Render("Spending is funded every year"))
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Results) > 1 {
		rec := AnalyzeScenarios(report)
		fmt.Fprintf(&buf, "Recommended: %s (final balance lead %s)\n", rec.ScenarioName, FormatCurrency(rec.BalanceAdvantage))
	}
	return buf.Bytes(), nil
}

var yearColumns = []struct {
	title string
	width int
}{
	{"Year", 6}, {"Age", 5}, {"Spend", 12}, {"Fixed", 12}, {"Savings", 11}, {"Roth", 11},
	{"TaxDef", 12}, {"Tax", 10}, {"Refund", 10}, {"Unmet", 11}, {"Balance", 14},
}

func writeYearTable(buf *bytes.Buffer, r *calculation.SimulationResult) {
	var head strings.Builder
	for _, c := range yearColumns {
		head.WriteString(pad(c.title, c.width))
	}
	fmt.Fprintln(buf, headerStyle.Render(head.String()))

	for _, y := range r.Years {
		cells := []string{
			intToString(y.Year),
			intToString(y.Age),
			y.SpendTarget.StringFixed(0),
			fixedIncome(y).StringFixed(0),
			y.SavingsWithdrawal.StringFixed(0),
			y.RothWithdrawal.StringFixed(0),
			y.TaxDeferredWithdrawal.StringFixed(0),
			y.FederalTax.StringFixed(0),
			y.Refund.Sub(y.Payment).StringFixed(0),
			y.Unmet.StringFixed(0),
			y.TotalBalance().StringFixed(0),
		}
		var line strings.Builder
		for i, cell := range cells {
			line.WriteString(pad(cell, yearColumns[i].width))
		}
		if y.Shortfall {
			fmt.Fprintln(buf, line.String()+" "+shortfallStyle.Render("SHORTFALL"))
			continue
		}
		fmt.Fprintln(buf, line.String())
	}
}

// fixedIncome is the year's gross cash income before any account draws.
func fixedIncome(y domain.YearResult) decimal.Decimal {
	return y.Income.GrossCash()
}

// pad right-aligns s in a column of the given width.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s + " "
}
