package output

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// DefaultAssumptions lists the modeling assumptions that hold for every plan.
var DefaultAssumptions = []string{
	fmt.Sprintf("Federal tax only: %d brackets and standard deduction indexed by inflation", calculation.BaseTaxYear),
	"Social Security taxed under the provisional-income tiers (thresholds not indexed)",
	"Required distributions from age 73 on the prior year-end tax-deferred balance",
	"Withholding is settled each year: refunds go to savings, balances due come from savings first",
}

// GenerateAssumptions creates dynamic assumptions list from actual config values
func GenerateAssumptions(in *domain.Inputs) []string {
	inflation := "none (rate was not a number)"
	if !math.IsNaN(in.Inflation) && !math.IsInf(in.Inflation, 0) {
		inflation = fmt.Sprintf("%.1f%% annually", in.Inflation*100)
	}
	order := ""
	for i, a := range in.Order() {
		if i > 0 {
			order += " > "
		}
		order += string(a)
	}
	out := []string{
		fmt.Sprintf("Filing status: %s", in.FilingStatus),
		fmt.Sprintf("Inflation: %s", inflation),
		fmt.Sprintf("Returns: savings %s, tax-deferred %s, roth %s",
			FormatRate(in.Returns.Savings), FormatRate(in.Returns.TaxDeferred), FormatRate(in.Returns.Roth)),
		fmt.Sprintf("Withdrawal order: %s", order),
		fmt.Sprintf("Interest basis: %s; income posted %s", in.Basis(), in.Frequency()),
	}
	return append(out, DefaultAssumptions...)
}

var decimalHundred = decimal.NewFromInt(100)
