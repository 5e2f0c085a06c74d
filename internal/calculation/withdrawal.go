package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	"github.com/danbrewer/LetsRetire-sub001/internal/ledger"
	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// WithdrawalEngine funds one simulated year: it posts fixed income, draws
// from savings and Roth, solves for the tax-deferred withdrawal, applies
// interest, reconciles withholding and pays for spending.
type WithdrawalEngine struct {
	Portioner AccountPortioner
	Solver    Bisection
	Logger    Logger
}

// NewWithdrawalEngine creates an engine. A nil portioner selects the default
// waterfall.
func NewWithdrawalEngine(p AccountPortioner) *WithdrawalEngine {
	if p == nil {
		p = NewWaterfallPortioner()
	}
	return &WithdrawalEngine{
		Portioner: p,
		Solver:    DefaultBisection,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *WithdrawalEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Reconciliation compares tax due on realized income with tax withheld.
type Reconciliation struct {
	Result   TaxResult
	Tax      decimal.Decimal
	Withheld decimal.Decimal
	Refund   decimal.Decimal
	Payment  decimal.Decimal
	Unpaid   decimal.Decimal
}

// ProcessYear runs the full year against the ledger and returns the
// reconciled result. An unfunded spending need is flagged on the result and
// logged; it is not an error.
func (e *WithdrawalEngine) ProcessYear(y *ledger.AccountingYear, yc domain.YearContext) (domain.YearResult, error) {
	demo, fiscal := yc.Demographics, yc.Fiscal
	if fiscal.IncomeFrequency == "" {
		fiscal.IncomeFrequency = domain.Monthly
	}

	calc, err := NewFederalTaxCalculator(demo.FilingStatus, fiscal.TaxYear, fiscal.Inflation, demo.Seniors())
	if err != nil {
		return domain.YearResult{}, err
	}

	res := domain.YearResult{
		Year:        fiscal.TaxYear,
		YearIndex:   fiscal.YearIndex,
		Age:         demo.Age,
		SpouseAge:   demo.SpouseAge,
		SpendTarget: fiscal.SpendTarget,
	}

	income, err := e.postFixedIncome(y, fiscal, yc.Income)
	if err != nil {
		return res, fmt.Errorf("posting fixed income for %d: %w", fiscal.TaxYear, err)
	}
	shortfall := fiscal.SpendTarget.Sub(y.Net(domain.AccountDisbursement))

	portion := e.Portioner.Portion(shortfall, []AccountFunds{
		{Account: domain.AccountSavings, Available: y.AvailableFunds(domain.AccountSavings), Enabled: fiscal.UseSavings},
		{Account: domain.AccountRoth, Available: y.AvailableFunds(domain.AccountRoth), Enabled: fiscal.UseRoth},
		{Account: domain.AccountTaxDeferred, Available: y.AvailableFunds(domain.AccountTaxDeferred), Enabled: fiscal.UseTaxDeferred},
	})

	savingsDraw, err := e.draw(y, fiscal, domain.AccountSavings, domain.CategorySavings, portion.Ask(domain.AccountSavings), "savings withdrawal")
	if err != nil {
		return res, err
	}
	rothDraw, err := e.draw(y, fiscal, domain.AccountRoth, domain.CategoryTradRoth, portion.Ask(domain.AccountRoth), "roth withdrawal")
	if err != nil {
		return res, err
	}
	res.RothWithdrawal = rothDraw

	tc := TaxContext{
		Calculator: calc,
		OrdinaryIncome: income.TaxableWages().
			Add(income.TotalPension()).
			Add(income.RMD).
			Add(income.OtherTaxable).
			Add(y.ProjectedInterest(domain.AccountSavings, fiscal.Rate(domain.AccountSavings))),
		SocialSecurity: income.TotalSocialSecurity(),
		CashIncome:     income.GrossCash(),
	}
	target := fiscal.SpendTarget.Sub(savingsDraw).Sub(rothDraw)
	availableTD := y.AvailableFunds(domain.AccountTaxDeferred)

	if e.taxDeferredUsable(fiscal) && availableTD.IsPositive() && tc.Evaluate(decimal.Zero).NetIncome.LessThan(target) {
		solved := e.Solver.Solve(target, tc)
		res.SolverIterations = solved.Iterations
		res.SolverConverged = solved.Converged
		if !solved.Converged {
			e.Logger.Warnf("year %d: withdrawal search stopped after %d iterations; using midpoint %s", fiscal.TaxYear, solved.Iterations, solved.Amount.StringFixed(2))
		}
		e.Logger.Debugf("year %d: tax-deferred withdrawal %s nets %s against target %s", fiscal.TaxYear,
			solved.Amount.StringFixed(2), solved.Evaluation.NetIncome.StringFixed(2), target.StringFixed(2))

		w := decimal.Min(coverRounding(tc, solved.Amount, target), availableTD)
		gross, err := e.postTaxDeferred(y, fiscal, w)
		if err != nil {
			return res, err
		}
		res.TaxDeferredWithdrawal = gross

		// A capped tax-deferred draw leaves its own tax uncovered; accounts
		// still holding funds make up the difference.
		settled := tc.CashIncome.Add(gross).Sub(money.RoundCents(tc.Evaluate(gross).Tax.Tax))
		if gap := target.Sub(settled); gap.IsPositive() {
			s, r, err := e.topUp(y, fiscal, gap)
			if err != nil {
				return res, err
			}
			savingsDraw = savingsDraw.Add(s)
			rothDraw = rothDraw.Add(r)
			res.RothWithdrawal = rothDraw
		}
	}

	interest := decimal.Zero
	for _, acct := range []domain.AccountType{domain.AccountSavings, domain.AccountRoth, domain.AccountTaxDeferred} {
		earned, err := y.RecordInterestEarnedForYear(acct, fiscal.Rate(acct))
		if err != nil {
			return res, fmt.Errorf("recording %s interest for %d: %w", acct, fiscal.TaxYear, err)
		}
		if acct == domain.AccountSavings {
			income.SavingsInterest = earned
		}
		interest = interest.Add(earned)
	}
	res.InterestEarned = interest
	res.Income = income

	recon, err := e.Reconcile(y, calc)
	if err != nil {
		return res, fmt.Errorf("reconciling taxes for %d: %w", fiscal.TaxYear, err)
	}
	res.TaxableSS = money.RoundCents(recon.Result.SocialSecurity.Taxable)
	res.StandardDeduction = recon.Result.Deduction
	res.TaxableIncome = money.RoundCents(recon.Result.TaxableIncome)
	res.FederalTax = recon.Tax
	res.Withheld = recon.Withheld
	res.Refund = recon.Refund
	res.Payment = recon.Payment

	pulled, spent, surplus, err := e.fundSpending(y, fiscal, recon.Refund)
	if err != nil {
		return res, err
	}
	res.SavingsWithdrawal = savingsDraw.Add(pulled)
	res.Spent = spent
	res.Surplus = surplus
	res.Unmet = fiscal.SpendTarget.Sub(spent).Add(recon.Unpaid)
	if res.Unmet.IsPositive() {
		res.Shortfall = true
		e.Logger.Errorf("year %d (age %d): spending of %s unmet by %s after exhausting available accounts",
			fiscal.TaxYear, demo.Age, fiscal.SpendTarget.StringFixed(2), res.Unmet.StringFixed(2))
	} else {
		res.Unmet = decimal.Zero
	}

	res.EndingSavings = y.EndingBalance(domain.AccountSavings)
	res.EndingTaxDeferred = y.EndingBalance(domain.AccountTaxDeferred)
	res.EndingRoth = y.EndingBalance(domain.AccountRoth)
	return res, nil
}

// topUp asks the portioner to cover gap from the tax-free accounts that
// still hold funds after the tax-deferred withdrawal.
func (e *WithdrawalEngine) topUp(y *ledger.AccountingYear, fiscal domain.FiscalData, gap decimal.Decimal) (savings, roth decimal.Decimal, err error) {
	portion := e.Portioner.Portion(gap, []AccountFunds{
		{Account: domain.AccountSavings, Available: y.AvailableFunds(domain.AccountSavings), Enabled: fiscal.UseSavings},
		{Account: domain.AccountRoth, Available: y.AvailableFunds(domain.AccountRoth), Enabled: fiscal.UseRoth},
		{Account: domain.AccountTaxDeferred, Available: decimal.Zero, Enabled: false},
	})
	savings, err = e.draw(y, fiscal, domain.AccountSavings, domain.CategorySavings, decimal.Min(portion.Ask(domain.AccountSavings), gap), "savings top-up")
	if err != nil {
		return savings, roth, err
	}
	roth, err = e.draw(y, fiscal, domain.AccountRoth, domain.CategoryTradRoth, decimal.Min(portion.Ask(domain.AccountRoth), gap.Sub(savings)), "roth top-up")
	return savings, roth, err
}

// coverRounding raises a solved withdrawal by whole cents until the cash left
// after the cent-rounded tax bill reaches the target.
func coverRounding(tc TaxContext, amount, target decimal.Decimal) decimal.Decimal {
	cent := decimal.New(1, -2)
	for i := 0; i < 5; i++ {
		ev := tc.Evaluate(amount)
		settled := tc.CashIncome.Add(amount).Sub(money.RoundCents(ev.Tax.Tax))
		if !settled.LessThan(target) {
			break
		}
		amount = amount.Add(cent)
	}
	return amount
}

func (e *WithdrawalEngine) taxDeferredUsable(fiscal domain.FiscalData) bool {
	if !fiscal.UseTaxDeferred {
		return false
	}
	if len(fiscal.WithdrawalOrder) == 0 {
		return true
	}
	for _, a := range fiscal.WithdrawalOrder {
		if a == domain.AccountTaxDeferred {
			return true
		}
	}
	return false
}

// postFixedIncome records every fixed stream and its withholding. The returned
// streams carry the amounts actually posted.
func (e *WithdrawalEngine) postFixedIncome(y *ledger.AccountingYear, fiscal domain.FiscalData, inc domain.IncomeStreams) (domain.IncomeStreams, error) {
	freq := fiscal.IncomeFrequency
	wh := fiscal.Withholding

	if err := e.receive(y, freq, domain.CategoryIncome, inc.TotalWages(), "wages", wh.Wages, inc.TaxableWages()); err != nil {
		return inc, err
	}
	moves := []struct {
		to       domain.AccountType
		category domain.Category
		amount   decimal.Decimal
		memo     string
	}{
		{domain.AccountTaxDeferred, domain.CategoryTrad401k, inc.PreTaxContribution, "pre-tax deferral"},
		{domain.AccountRoth, domain.CategoryTradRoth, inc.RothContribution, "roth deferral"},
		{domain.AccountSavings, domain.CategorySavings, inc.SavingsContribution, "savings contribution"},
	}
	for _, m := range moves {
		if !m.amount.IsPositive() {
			continue
		}
		moved, err := y.ProcessAsPeriodicWithdrawals(domain.AccountDisbursement, m.category, m.amount, freq, m.memo)
		if err != nil {
			return inc, err
		}
		if _, err := y.ProcessAsPeriodicDeposits(m.to, domain.CategoryContribution, moved, freq, m.memo); err != nil {
			return inc, err
		}
	}
	if inc.EmployerMatch.IsPositive() {
		if _, err := y.ProcessAsPeriodicDeposits(domain.AccountTaxDeferred, domain.CategoryContribution, inc.EmployerMatch, freq, "employer match"); err != nil {
			return inc, err
		}
	}

	if err := e.receive(y, freq, domain.CategoryPension, inc.TotalPension(), "pension", wh.Pension, inc.TotalPension()); err != nil {
		return inc, err
	}
	ss := inc.TotalSocialSecurity()
	if err := e.receive(y, freq, domain.CategorySocialSecurity, ss, "social security", wh.SocialSecurity, ss); err != nil {
		return inc, err
	}

	if inc.RMD.IsPositive() {
		rmd, err := y.ProcessAsPeriodicWithdrawals(domain.AccountTaxDeferred, domain.CategoryRMD, inc.RMD, freq, "required minimum distribution")
		if err != nil {
			return inc, err
		}
		if rmd.LessThan(inc.RMD) {
			e.Logger.Warnf("year %d: required distribution of %s limited to available balance %s", fiscal.TaxYear, inc.RMD.StringFixed(2), rmd.StringFixed(2))
		}
		inc.RMD = rmd
		if err := e.receive(y, freq, domain.CategoryRMD, rmd, "required minimum distribution", wh.TaxDeferred, rmd); err != nil {
			return inc, err
		}
	}

	if err := e.receive(y, freq, domain.CategoryIncome, inc.OtherTaxable, "other taxable income", decimal.Zero, decimal.Zero); err != nil {
		return inc, err
	}
	if err := e.receive(y, freq, domain.CategoryOtherNonTaxable, inc.OtherNonTaxable, "other non-taxable income", decimal.Zero, decimal.Zero); err != nil {
		return inc, err
	}
	return inc, nil
}

// receive deposits gross income into the disbursement account and moves the
// withholding on base at rate into the withholdings account.
func (e *WithdrawalEngine) receive(y *ledger.AccountingYear, freq domain.Frequency, category domain.Category, gross decimal.Decimal, memo string, rate, base decimal.Decimal) error {
	if !gross.IsPositive() {
		return nil
	}
	if _, err := y.ProcessAsPeriodicDeposits(domain.AccountDisbursement, category, gross, freq, memo); err != nil {
		return err
	}
	withholding := money.RoundCents(base.Mul(rate))
	if !withholding.IsPositive() {
		return nil
	}
	withheld, err := y.ProcessAsPeriodicWithdrawals(domain.AccountDisbursement, domain.CategoryTaxes, withholding, freq, memo+" withholding")
	if err != nil {
		return err
	}
	_, err = y.ProcessAsPeriodicDeposits(domain.AccountWithholdings, domain.CategoryTaxes, withheld, freq, memo+" withholding")
	return err
}

// draw moves a tax-free withdrawal into the disbursement account and returns
// the amount actually withdrawn.
func (e *WithdrawalEngine) draw(y *ledger.AccountingYear, fiscal domain.FiscalData, from domain.AccountType, category domain.Category, amount decimal.Decimal, memo string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, nil
	}
	got, err := y.ProcessAsPeriodicWithdrawals(from, domain.CategoryDisbursement, amount, fiscal.IncomeFrequency, memo)
	if err != nil {
		return decimal.Zero, fmt.Errorf("withdrawing from %s: %w", from, err)
	}
	if _, err := y.ProcessAsPeriodicDeposits(domain.AccountDisbursement, category, got, fiscal.IncomeFrequency, memo); err != nil {
		return got, err
	}
	return got, nil
}

func (e *WithdrawalEngine) postTaxDeferred(y *ledger.AccountingYear, fiscal domain.FiscalData, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, nil
	}
	const memo = "tax-deferred withdrawal"
	gross, err := y.ProcessAsPeriodicWithdrawals(domain.AccountTaxDeferred, domain.CategoryTrad401k, amount, fiscal.IncomeFrequency, memo)
	if err != nil {
		return decimal.Zero, fmt.Errorf("withdrawing from %s: %w", domain.AccountTaxDeferred, err)
	}
	if err := e.receive(y, fiscal.IncomeFrequency, domain.CategoryTrad401k, gross, memo, fiscal.Withholding.TaxDeferred, gross); err != nil {
		return gross, err
	}
	return gross, nil
}

// RealizedIncome derives ordinary taxable income and gross Social Security
// from the year's posted transactions.
func RealizedIncome(y *ledger.AccountingYear) (ordinary, socialSecurity decimal.Decimal) {
	ordinary = y.Deposits(domain.AccountDisbursement, domain.CategoryIncome).
		Sub(y.Withdrawals(domain.AccountDisbursement, domain.CategoryTrad401k)).
		Add(y.Deposits(domain.AccountDisbursement, domain.CategoryPension)).
		Add(y.Withdrawals(domain.AccountTaxDeferred, domain.CategoryRMD, domain.CategoryTrad401k)).
		Add(y.Net(domain.AccountSavings, domain.CategoryInterest))
	socialSecurity = y.Deposits(domain.AccountDisbursement, domain.CategorySocialSecurity)
	return ordinary, socialSecurity
}

// Reconcile computes tax due on realized income and settles the difference
// with withholding: a refund is deposited to savings, a balance due is paid
// from savings and then from the disbursement account.
func (e *WithdrawalEngine) Reconcile(y *ledger.AccountingYear, calc *FederalTaxCalculator) (Reconciliation, error) {
	ordinary, ss := RealizedIncome(y)
	result := calc.Calculate(ordinary, ss)

	rec := Reconciliation{
		Result:   result,
		Tax:      money.RoundCents(result.Tax),
		Withheld: y.Deposits(domain.AccountWithholdings, domain.CategoryTaxes),
		Refund:   decimal.Zero,
		Payment:  decimal.Zero,
		Unpaid:   decimal.Zero,
	}

	switch {
	case rec.Withheld.GreaterThan(rec.Tax):
		refund := rec.Withheld.Sub(rec.Tax)
		returned, err := y.Withdrawal(domain.AccountWithholdings, domain.CategoryTaxRefund, refund, domain.EndOfYear)
		if err != nil {
			return rec, err
		}
		if _, err := y.Deposit(domain.AccountSavings, domain.CategoryTaxRefund, returned, domain.EndOfYear); err != nil {
			return rec, err
		}
		rec.Refund = returned
		e.Logger.Debugf("year %d: refund of %s", y.TaxYear(), returned.StringFixed(2))

	case rec.Tax.GreaterThan(rec.Withheld):
		due := rec.Tax.Sub(rec.Withheld)
		paid := decimal.Zero
		for _, from := range []domain.AccountType{domain.AccountSavings, domain.AccountDisbursement} {
			if !due.Sub(paid).IsPositive() {
				break
			}
			got, err := y.Withdrawal(from, domain.CategoryTaxPayment, due.Sub(paid), domain.EndOfYear)
			if err != nil {
				return rec, err
			}
			paid = paid.Add(got)
		}
		if _, err := y.Deposit(domain.AccountWithholdings, domain.CategoryTaxPayment, paid, domain.EndOfYear); err != nil {
			return rec, err
		}
		rec.Payment = paid
		rec.Unpaid = due.Sub(paid)
		e.Logger.Debugf("year %d: balance due of %s, paid %s", y.TaxYear(), due.StringFixed(2), paid.StringFixed(2))
	}
	return rec, nil
}

// fundSpending tops up the disbursement account from savings when needed,
// pays the spending target and sweeps any surplus into savings. With savings
// disabled only this year's tax refund may be pulled back.
func (e *WithdrawalEngine) fundSpending(y *ledger.AccountingYear, fiscal domain.FiscalData, refund decimal.Decimal) (pulled, spent, surplus decimal.Decimal, err error) {
	spend := fiscal.SpendTarget
	cash := y.EndingBalance(domain.AccountDisbursement)

	need := spend.Sub(cash)
	if !fiscal.UseSavings {
		need = decimal.Min(need, refund)
	}
	if need.IsPositive() {
		pulled, err = y.Withdrawal(domain.AccountSavings, domain.CategoryDisbursement, need, domain.EndOfYear)
		if err != nil {
			return pulled, spent, surplus, err
		}
		if _, err = y.Deposit(domain.AccountDisbursement, domain.CategorySavings, pulled, domain.EndOfYear); err != nil {
			return pulled, spent, surplus, err
		}
	}

	spent, err = y.Withdrawal(domain.AccountDisbursement, domain.CategoryDisbursement, spend, domain.EndOfYear)
	if err != nil {
		return pulled, spent, surplus, err
	}

	left := y.EndingBalance(domain.AccountDisbursement)
	if left.IsPositive() {
		surplus, err = y.Withdrawal(domain.AccountDisbursement, domain.CategorySavings, left, domain.EndOfYear)
		if err != nil {
			return pulled, spent, surplus, err
		}
		if _, err = y.Deposit(domain.AccountSavings, domain.CategorySavings, surplus, domain.EndOfYear); err != nil {
			return pulled, spent, surplus, err
		}
	}
	return pulled, spent, surplus, nil
}
