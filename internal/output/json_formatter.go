package output

import (
	"encoding/json"
	"math"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// JSONFormatter serializes every scenario result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	type scenario struct {
		Inputs        *domain.Inputs `json:"inputs,omitempty"`
		DepletionYear int            `json:"depletion_year,omitempty"`
		DepletionAge  int            `json:"depletion_age,omitempty"`
		Years         any            `json:"years"`
	}
	out := make([]scenario, 0, len(report.Results))
	for i, r := range report.Results {
		s := scenario{DepletionYear: r.DepletionYear, DepletionAge: r.DepletionAge, Years: r.Years}
		if i < len(report.Inputs) && report.Inputs[i] != nil {
			in := *report.Inputs[i]
			// JSON has no NaN; the run applied zero inflation in that case.
			if math.IsNaN(in.Inflation) || math.IsInf(in.Inflation, 0) {
				in.Inflation = 0
			}
			s.Inputs = &in
		}
		out = append(out, s)
	}
	return json.MarshalIndent(map[string]any{"scenarios": out}, "", "  ")
}
