package calculation

import (
	"github.com/shopspring/decimal"

	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// TaxContext holds everything fixed for the year while the tax-deferred
// withdrawal is being solved.
type TaxContext struct {
	Calculator *FederalTaxCalculator
	// OrdinaryIncome is fixed taxable income other than Social Security.
	OrdinaryIncome decimal.Decimal
	// SocialSecurity is the gross benefit for the year.
	SocialSecurity decimal.Decimal
	// CashIncome is the fixed gross income that reaches spendable cash.
	CashIncome decimal.Decimal
}

// Evaluation is the outcome of a candidate tax-deferred withdrawal.
type Evaluation struct {
	Withdrawal decimal.Decimal
	Tax        TaxResult
	NetIncome  decimal.Decimal
}

// Evaluate computes net income for a candidate gross withdrawal. The taxable
// share of Social Security is re-derived for every candidate.
func (tc TaxContext) Evaluate(withdrawal decimal.Decimal) Evaluation {
	res := tc.Calculator.Calculate(tc.OrdinaryIncome.Add(withdrawal), tc.SocialSecurity)
	return Evaluation{
		Withdrawal: withdrawal,
		Tax:        res,
		NetIncome:  tc.CashIncome.Add(withdrawal).Sub(res.Tax),
	}
}

// SolveResult is the outcome of a bisection run.
type SolveResult struct {
	Amount     decimal.Decimal
	Iterations int
	Converged  bool
	Evaluation Evaluation
}

// Bisection searches [0, 2*target] for the withdrawal whose net income meets
// the target. The upper seed assumes the gross withdrawal never exceeds twice
// the net target; when it does the search ends pinned at the seed.
type Bisection struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultBisection stops at one cent or 80 halvings.
var DefaultBisection = Bisection{
	Tolerance:     decimal.NewFromFloat(0.01),
	MaxIterations: 80,
}

// SolveWithdrawal runs DefaultBisection.
func SolveWithdrawal(target decimal.Decimal, tc TaxContext) SolveResult {
	return DefaultBisection.Solve(target, tc)
}

// Solve returns the cent-rounded midpoint of the final interval. Hitting the
// iteration ceiling is not an error; Converged reports it.
func (b Bisection) Solve(target decimal.Decimal, tc TaxContext) SolveResult {
	if !target.IsPositive() {
		return SolveResult{Amount: decimal.Zero, Converged: true, Evaluation: tc.Evaluate(decimal.Zero)}
	}

	lo := decimal.Zero
	hi := target.Mul(decimal.NewFromInt(2))
	iterations := 0
	for iterations < b.MaxIterations && hi.Sub(lo).GreaterThan(b.Tolerance) {
		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		if tc.Evaluate(mid).NetIncome.LessThan(target) {
			lo = mid
		} else {
			hi = mid
		}
		iterations++
	}

	amount := money.RoundCents(lo.Add(hi).Div(decimal.NewFromInt(2)))
	return SolveResult{
		Amount:     amount,
		Iterations: iterations,
		Converged:  !hi.Sub(lo).GreaterThan(b.Tolerance),
		Evaluation: tc.Evaluate(amount),
	}
}
