package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// GenerateReport renders the report with the named formatter and writes it
// to a timestamped file. "all" writes the console and detailed CSV reports.
func GenerateReport(report *Report, format string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, LedgerCSVExporter{}} {
			name, err := WriteFormatted(f, report, extensionFor(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	name, err := WriteFormatted(f, report, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// Render writes the named format to w.
func Render(w io.Writer, report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupportedFormat(format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("formatting %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case strings.HasPrefix(name, "console"):
		return "txt"
	}
	return name
}

// SaveConfiguration writes the plans back out as an input file.
func SaveConfiguration(inputs []*domain.Inputs, filename string) error {
	b, err := yaml.Marshal(scenarioFile{Scenarios: inputs})
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

type scenarioFile struct {
	Scenarios []*domain.Inputs `yaml:"scenarios"`
}

// YAMLFormatter echoes the resolved inputs in the input file layout.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(scenarioFile{Scenarios: report.Inputs})
}
