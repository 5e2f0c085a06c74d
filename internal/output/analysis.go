package output

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName  string
	Sustainable   bool
	DepletionYear int
	FinalBalance  decimal.Decimal
	// BalanceAdvantage is the lead in final balance over the runner-up.
	BalanceAdvantage decimal.Decimal
}

// AnalyzeScenarios picks the scenario that funds spending longest, breaking
// ties on final combined balance.
func AnalyzeScenarios(report *Report) Recommendation {
	type ranked struct {
		name      string
		depletion int
		balance   decimal.Decimal
	}
	var ranks []ranked
	for _, r := range report.Results {
		ranks = append(ranks, ranked{r.Name, r.DepletionYear, summarize(r).finalBalance})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}

	// A zero depletion year means spending was met every year.
	lasts := func(x ranked) int {
		if x.depletion == 0 {
			return int(^uint(0) >> 1)
		}
		return x.depletion
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if lasts(ranks[i]) != lasts(ranks[j]) {
			return lasts(ranks[i]) > lasts(ranks[j])
		}
		return ranks[i].balance.GreaterThan(ranks[j].balance)
	})

	best := ranks[0]
	rec := Recommendation{
		ScenarioName:     best.name,
		Sustainable:      best.depletion == 0,
		DepletionYear:    best.depletion,
		FinalBalance:     best.balance,
		BalanceAdvantage: decimal.Zero,
	}
	if len(ranks) > 1 {
		rec.BalanceAdvantage = best.balance.Sub(ranks[1].balance)
	}
	return rec
}
