package output

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter claims.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Report is what every formatter renders: the plans and their simulated
// outcomes, index-aligned.
type Report struct {
	Inputs  []*domain.Inputs
	Results []*calculation.SimulationResult
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                      { return ff.ID }

// WriteFormatted runs a formatter and writes output to timestamped file with extension.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("retirement_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	ConsoleFormatter{},
	JSONFormatter{},
	LedgerCSVExporter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f
		}
	}
	// try normalized name
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"table":           "console",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"json-pretty":     "json",
	"transactions":    "ledger-csv",
	"csv-ledger":      "ledger-csv",
	"inputs":          "yaml",
	"yml":             "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SuggestFormat returns the known name or alias closest to name, or "" when
// nothing is within a few edits.
func SuggestFormat(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	best, bestDist := "", 4
	candidates := append(AvailableFormatterNames(), AvailableFormatAliases()...)
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(n, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// unsupportedFormat builds the error for an unknown format name.
func unsupportedFormat(format string) error {
	hint := ""
	if s := SuggestFormat(format); s != "" {
		hint = fmt.Sprintf(" Did you mean %q?", s)
	}
	return fmt.Errorf("%w: %q.%s Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, hint,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
