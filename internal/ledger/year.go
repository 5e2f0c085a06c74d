package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	"github.com/danbrewer/LetsRetire-sub001/pkg/dateutil"
	money "github.com/danbrewer/LetsRetire-sub001/pkg/decimal"
)

// AccountingYear is the read/write surface of a Ledger for one tax year.
// It holds no state of its own.
type AccountingYear struct {
	ledger *Ledger
	year   int
}

// TaxYear returns the calendar year this facade is scoped to.
func (y *AccountingYear) TaxYear() int { return y.year }

func (y *AccountingYear) date(timing domain.Timing) time.Time {
	switch timing {
	case domain.StartOfYear:
		return dateutil.YearStart(y.year)
	case domain.MidYear:
		return dateutil.MidYear(y.year)
	default:
		return dateutil.YearEnd(y.year)
	}
}

// Deposit records a deposit and returns the amount posted. Zero amounts are
// accepted and post nothing.
func (y *AccountingYear) Deposit(account domain.AccountType, category domain.Category, amount decimal.Decimal, timing domain.Timing) (decimal.Decimal, error) {
	return y.post(account, domain.Deposit, category, amount, y.date(timing), "")
}

// Withdrawal records a withdrawal capped at the account's available funds and
// returns the amount actually withdrawn.
func (y *AccountingYear) Withdrawal(account domain.AccountType, category domain.Category, amount decimal.Decimal, timing domain.Timing) (decimal.Decimal, error) {
	return y.post(account, domain.Withdrawal, category, amount, y.date(timing), "")
}

func (y *AccountingYear) post(account domain.AccountType, typ domain.TransactionType, category domain.Category, amount decimal.Decimal, date time.Time, memo string) (decimal.Decimal, error) {
	acct, err := y.ledger.Account(account)
	if err != nil {
		return decimal.Zero, err
	}
	amount = money.RoundCents(amount)
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s %s of %s", domain.ErrInvalidAmount, account, typ, amount)
	}
	if typ == domain.Withdrawal {
		amount = decimal.Min(amount, y.AvailableFunds(account))
	}
	tx, err := NewTransaction(typ, category, amount, date, memo)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	acct.record(tx)
	return amount, nil
}

// ProcessAsPeriodicDeposits spreads an annual amount into equal installments at
// the given cadence. The last installment absorbs the rounding remainder.
func (y *AccountingYear) ProcessAsPeriodicDeposits(account domain.AccountType, category domain.Category, annual decimal.Decimal, freq domain.Frequency, memo string) (decimal.Decimal, error) {
	return y.periodic(account, domain.Deposit, category, annual, freq, memo)
}

// ProcessAsPeriodicWithdrawals is the withdrawal counterpart of
// ProcessAsPeriodicDeposits; each installment is capped at available funds and
// the total actually withdrawn is returned.
func (y *AccountingYear) ProcessAsPeriodicWithdrawals(account domain.AccountType, category domain.Category, annual decimal.Decimal, freq domain.Frequency, memo string) (decimal.Decimal, error) {
	return y.periodic(account, domain.Withdrawal, category, annual, freq, memo)
}

func (y *AccountingYear) periodic(account domain.AccountType, typ domain.TransactionType, category domain.Category, annual decimal.Decimal, freq domain.Frequency, memo string) (decimal.Decimal, error) {
	dates, err := y.installmentDates(freq)
	if err != nil {
		return decimal.Zero, err
	}
	annual = money.RoundCents(annual)
	if annual.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s %s of %s", domain.ErrInvalidAmount, account, typ, annual)
	}

	n := int64(len(dates))
	each := annual.Div(decimal.NewFromInt(n)).Truncate(2)
	last := annual.Sub(each.Mul(decimal.NewFromInt(n - 1)))

	total := decimal.Zero
	for i, d := range dates {
		amt := each
		if int64(i) == n-1 {
			amt = last
		}
		posted, err := y.post(account, typ, category, amt, d, memo)
		if err != nil {
			return total, err
		}
		total = total.Add(posted)
	}
	return total, nil
}

func (y *AccountingYear) installmentDates(freq domain.Frequency) ([]time.Time, error) {
	switch freq {
	case domain.Monthly:
		return dateutil.EveryNMonths(y.year, 1), nil
	case domain.Quarterly:
		return dateutil.EveryNMonths(y.year, 3), nil
	case domain.SemiAnnual:
		return dateutil.EveryNMonths(y.year, 6), nil
	case domain.AnnualLeading:
		return []time.Time{dateutil.YearStart(y.year)}, nil
	case domain.AnnualTrailing:
		return []time.Time{dateutil.YearEnd(y.year)}, nil
	case domain.Daily:
		return dateutil.EveryDay(y.year), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFrequency, freq)
}

func (y *AccountingYear) sum(account domain.AccountType, typ domain.TransactionType, categories []domain.Category) decimal.Decimal {
	acct, ok := y.ledger.accounts[account]
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, tx := range acct.inYear(y.year) {
		if tx.Type == typ && tx.matches(categories) {
			total = total.Add(tx.Amount)
		}
	}
	return money.RoundCents(total)
}

// Deposits sums this year's deposits into the account, optionally restricted
// to the given categories.
func (y *AccountingYear) Deposits(account domain.AccountType, categories ...domain.Category) decimal.Decimal {
	return y.sum(account, domain.Deposit, categories)
}

// Withdrawals sums this year's withdrawals from the account, optionally
// restricted to the given categories.
func (y *AccountingYear) Withdrawals(account domain.AccountType, categories ...domain.Category) decimal.Decimal {
	return y.sum(account, domain.Withdrawal, categories)
}

// Net is deposits less withdrawals for the year.
func (y *AccountingYear) Net(account domain.AccountType, categories ...domain.Category) decimal.Decimal {
	return y.Deposits(account, categories...).Sub(y.Withdrawals(account, categories...))
}

// StartingBalance is the balance before January 1.
func (y *AccountingYear) StartingBalance(account domain.AccountType) decimal.Decimal {
	acct, ok := y.ledger.accounts[account]
	if !ok {
		return decimal.Zero
	}
	return money.RoundCents(acct.BalanceBefore(dateutil.YearStart(y.year)))
}

// EndingBalance is the balance through December 31, optionally restricted to
// the given categories.
func (y *AccountingYear) EndingBalance(account domain.AccountType, categories ...domain.Category) decimal.Decimal {
	acct, ok := y.ledger.accounts[account]
	if !ok {
		return decimal.Zero
	}
	return money.RoundCents(acct.BalanceThrough(dateutil.YearEnd(y.year), categories...))
}

// AvailableFunds is the sum of positive year-end balances of the accounts.
func (y *AccountingYear) AvailableFunds(accounts ...domain.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		bal := y.EndingBalance(a)
		if bal.IsPositive() {
			total = total.Add(bal)
		}
	}
	return total
}

// Transactions returns a copy of the account's transactions dated in this year.
func (y *AccountingYear) Transactions(account domain.AccountType) []Transaction {
	acct, ok := y.ledger.accounts[account]
	if !ok {
		return nil
	}
	return acct.inYear(y.year)
}

// ProjectedInterest computes the year's interest on the ledger's basis
// without posting it. Interest already posted this year is ignored.
func (y *AccountingYear) ProjectedInterest(account domain.AccountType, rate decimal.Decimal) decimal.Decimal {
	acct, ok := y.ledger.accounts[account]
	if !ok || rate.IsZero() {
		return decimal.Zero
	}

	start := y.StartingBalance(account)
	var base decimal.Decimal
	switch y.ledger.basis {
	case domain.BasisStartingBalance:
		base = start
	case domain.BasisAverageBalance:
		end := start.Add(y.flowsExcludingInterest(acct))
		base = start.Add(end).Div(decimal.NewFromInt(2))
	case domain.BasisDailyRolling:
		base = y.averageDailyBalance(acct, start)
	default:
		base = start.Sub(y.Withdrawals(account))
	}
	if base.IsNegative() {
		return decimal.Zero
	}
	return money.RoundCents(base.Mul(rate))
}

// RecordInterestEarnedForYear posts the projected interest as a year-end
// Interest transaction and returns its signed amount.
func (y *AccountingYear) RecordInterestEarnedForYear(account domain.AccountType, rate decimal.Decimal) (decimal.Decimal, error) {
	if _, err := y.ledger.Account(account); err != nil {
		return decimal.Zero, err
	}
	interest := y.ProjectedInterest(account, rate)
	if interest.IsNegative() {
		lost, err := y.post(account, domain.Withdrawal, domain.CategoryInterest, interest.Neg(), dateutil.YearEnd(y.year), "interest")
		return lost.Neg(), err
	}
	return y.post(account, domain.Deposit, domain.CategoryInterest, interest, dateutil.YearEnd(y.year), "interest")
}

func (y *AccountingYear) flowsExcludingInterest(acct *Account) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range acct.inYear(y.year) {
		if tx.Category != domain.CategoryInterest {
			total = total.Add(tx.Signed())
		}
	}
	return total
}

// averageDailyBalance walks the year day by day, flooring each end-of-day
// balance at zero.
func (y *AccountingYear) averageDailyBalance(acct *Account, start decimal.Decimal) decimal.Decimal {
	flows := make(map[int]decimal.Decimal)
	for _, tx := range acct.inYear(y.year) {
		if tx.Category == domain.CategoryInterest {
			continue
		}
		day := tx.Date.YearDay()
		flows[day] = flows[day].Add(tx.Signed())
	}

	days := dateutil.DaysInYear(y.year)
	balance := start
	total := decimal.Zero
	for d := 1; d <= days; d++ {
		if f, ok := flows[d]; ok {
			balance = balance.Add(f)
		}
		if balance.IsPositive() {
			total = total.Add(balance)
		}
	}
	return total.Div(decimal.NewFromInt(int64(days)))
}
