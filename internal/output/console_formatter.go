package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	results := append([]*calculation.SimulationResult(nil), report.Results...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	for _, r := range results {
		s := summarize(r)
		status := "funded through " + intToString(s.lastYear)
		if r.Depleted() {
			status = fmt.Sprintf("runs short in %d (age %d)", r.DepletionYear, r.DepletionAge)
		}
		fmt.Fprintf(&buf, "%s: %s\n", r.Name, status)
		fmt.Fprintf(&buf, "  Spent=%s Tax=%s Unmet=%s Final=%s\n",
			FormatCurrency(s.spent), FormatCurrency(s.tax), FormatCurrency(s.unmet), FormatCurrency(s.finalBalance))
	}
	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" && len(results) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (final balance lead %s)\n", rec.ScenarioName, FormatCurrency(rec.BalanceAdvantage))
	}
	return buf.Bytes(), nil
}
