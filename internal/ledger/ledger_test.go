package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()
	l := New(opts...)
	require.NoError(t, l.Open(domain.AccountSavings, d("10000"), 2030))
	require.NoError(t, l.Open(domain.AccountRoth, d("5000"), 2030))
	require.NoError(t, l.Open(domain.AccountTaxDeferred, d("100000"), 2030))
	require.NoError(t, l.Open(domain.AccountDisbursement, decimal.Zero, 2030))
	require.NoError(t, l.Open(domain.AccountWithholdings, decimal.Zero, 2030))
	return l
}

func TestNewTransaction(t *testing.T) {
	date := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

	tx, err := NewTransaction(domain.Deposit, domain.CategoryIncome, d("12.50"), date, "pay")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.True(t, tx.Signed().Equal(d("12.50")))

	tx, err = NewTransaction(domain.Withdrawal, domain.CategoryTaxes, d("3"), date, "")
	require.NoError(t, err)
	assert.True(t, tx.Signed().Equal(d("-3")))

	_, err = NewTransaction("transfer", domain.CategoryIncome, d("1"), date, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)

	_, err = NewTransaction(domain.Deposit, "gift", d("1"), date, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = NewTransaction(domain.Deposit, domain.CategoryIncome, d("-1"), date, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestOpenAndLookup(t *testing.T) {
	l := New()
	require.NoError(t, l.Open(domain.AccountSavings, d("250"), 2030))

	err := l.Open(domain.AccountSavings, d("1"), 2030)
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	err = l.Open("brokerage", d("1"), 2030)
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	_, err = l.Account(domain.AccountRoth)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	y := l.Year(2030)
	assert.True(t, y.StartingBalance(domain.AccountSavings).Equal(d("250")))

	_, err = y.Deposit(domain.AccountRoth, domain.CategoryContribution, d("1"), domain.EndOfYear)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDepositAndWithdrawal(t *testing.T) {
	l := newTestLedger(t)
	y := l.Year(2030)

	_, err := y.Deposit(domain.AccountSavings, domain.CategoryContribution, d("-5"), domain.EndOfYear)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := y.Deposit(domain.AccountSavings, domain.CategoryContribution, d("500"), domain.MidYear)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("500")))

	got, err = y.Withdrawal(domain.AccountSavings, domain.CategoryDisbursement, d("2000"), domain.StartOfYear)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("2000")))

	assert.True(t, y.EndingBalance(domain.AccountSavings).Equal(d("8500")))
	assert.True(t, y.Deposits(domain.AccountSavings).Equal(d("500")))
	assert.True(t, y.Withdrawals(domain.AccountSavings, domain.CategoryDisbursement).Equal(d("2000")))
	assert.True(t, y.Withdrawals(domain.AccountSavings, domain.CategoryTaxes).IsZero())
}

func TestWithdrawalCappedAtAvailableFunds(t *testing.T) {
	l := newTestLedger(t)
	y := l.Year(2030)

	got, err := y.Withdrawal(domain.AccountRoth, domain.CategoryDisbursement, d("9000"), domain.EndOfYear)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("5000")))
	assert.True(t, y.EndingBalance(domain.AccountRoth).IsZero())

	got, err = y.Withdrawal(domain.AccountRoth, domain.CategoryDisbursement, d("1"), domain.EndOfYear)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Len(t, y.Transactions(domain.AccountRoth), 1)
}

func TestBalanceInvariant(t *testing.T) {
	l := newTestLedger(t)
	for year := 2030; year <= 2032; year++ {
		y := l.Year(year)
		_, err := y.ProcessAsPeriodicDeposits(domain.AccountSavings, domain.CategoryIncome, d("1234.56"), domain.Monthly, "")
		require.NoError(t, err)
		_, err = y.ProcessAsPeriodicWithdrawals(domain.AccountSavings, domain.CategoryDisbursement, d("3000"), domain.Quarterly, "")
		require.NoError(t, err)
		_, err = y.RecordInterestEarnedForYear(domain.AccountSavings, d("0.04"))
		require.NoError(t, err)

		for _, acct := range domain.AccountTypes {
			want := y.StartingBalance(acct).Add(y.Deposits(acct)).Sub(y.Withdrawals(acct))
			assert.True(t, want.Equal(y.EndingBalance(acct)), "%s %d", acct, year)
		}
	}

	next := l.Year(2031)
	assert.True(t, next.StartingBalance(domain.AccountSavings).Equal(l.Year(2030).EndingBalance(domain.AccountSavings)))
}

func TestReadQueriesAreIdempotent(t *testing.T) {
	l := newTestLedger(t)
	y := l.Year(2030)
	_, err := y.Deposit(domain.AccountSavings, domain.CategoryIncome, d("10"), domain.EndOfYear)
	require.NoError(t, err)

	first := y.EndingBalance(domain.AccountSavings)
	second := y.EndingBalance(domain.AccountSavings)
	assert.True(t, first.Equal(second))
	assert.True(t, y.ProjectedInterest(domain.AccountSavings, d("0.05")).Equal(y.ProjectedInterest(domain.AccountSavings, d("0.05"))))
}

func TestPeriodicInstallmentsSumToAnnual(t *testing.T) {
	cases := []struct {
		freq  domain.Frequency
		count int
	}{
		{domain.Monthly, 12},
		{domain.Quarterly, 4},
		{domain.SemiAnnual, 2},
		{domain.AnnualLeading, 1},
		{domain.AnnualTrailing, 1},
		{domain.Daily, 365},
	}

	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			l := newTestLedger(t)
			y := l.Year(2031)
			total, err := y.ProcessAsPeriodicDeposits(domain.AccountDisbursement, domain.CategoryPension, d("10000.01"), tc.freq, "pension")
			require.NoError(t, err)
			assert.True(t, total.Equal(d("10000.01")))
			assert.True(t, y.Deposits(domain.AccountDisbursement, domain.CategoryPension).Equal(d("10000.01")))

			txs := y.Transactions(domain.AccountDisbursement)
			require.Len(t, txs, tc.count)
			for _, tx := range txs {
				assert.Equal(t, 2031, tx.Date.Year())
				assert.Equal(t, "pension", tx.Memo)
			}
		})
	}

	l := newTestLedger(t)
	_, err := l.Year(2031).ProcessAsPeriodicDeposits(domain.AccountSavings, domain.CategoryIncome, d("1"), "weekly", "")
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
}

func TestPeriodicTimingDates(t *testing.T) {
	l := newTestLedger(t)
	y := l.Year(2030)
	_, err := y.ProcessAsPeriodicDeposits(domain.AccountWithholdings, domain.CategoryTaxes, d("100"), domain.AnnualLeading, "")
	require.NoError(t, err)
	_, err = y.ProcessAsPeriodicDeposits(domain.AccountDisbursement, domain.CategoryTaxes, d("100"), domain.AnnualTrailing, "")
	require.NoError(t, err)

	assert.Equal(t, time.January, y.Transactions(domain.AccountWithholdings)[0].Date.Month())
	last := y.Transactions(domain.AccountDisbursement)[0].Date
	assert.Equal(t, time.December, last.Month())
	assert.Equal(t, 31, last.Day())
}

func TestAvailableFunds(t *testing.T) {
	l := newTestLedger(t)
	y := l.Year(2030)
	assert.True(t, y.AvailableFunds(domain.AccountSavings, domain.AccountRoth).Equal(d("15000")))
	assert.True(t, y.AvailableFunds().IsZero())
	assert.True(t, y.AvailableFunds(domain.AccountWithholdings).IsZero())
}

func TestInterestBases(t *testing.T) {
	post := func(t *testing.T, basis domain.InterestBasis) decimal.Decimal {
		l := newTestLedger(t, WithInterestBasis(basis))
		y := l.Year(2030)
		// 10,000 opening; +2,000 on Jan 1; -4,000 on Jul 1.
		_, err := y.Deposit(domain.AccountSavings, domain.CategoryContribution, d("2000"), domain.StartOfYear)
		require.NoError(t, err)
		_, err = y.Withdrawal(domain.AccountSavings, domain.CategoryDisbursement, d("4000"), domain.MidYear)
		require.NoError(t, err)
		got, err := y.RecordInterestEarnedForYear(domain.AccountSavings, d("0.10"))
		require.NoError(t, err)
		assert.True(t, y.Deposits(domain.AccountSavings, domain.CategoryInterest).Equal(got))
		return got
	}

	assert.True(t, post(t, domain.BasisStartingBalance).Equal(d("1000")))
	assert.True(t, post(t, domain.BasisIgnoreDeposits).Equal(d("600")))
	assert.True(t, post(t, domain.BasisAverageBalance).Equal(d("900")))

	// 181 days at 12,000 then 184 days at 8,000 in a 365-day year.
	daily := post(t, domain.BasisDailyRolling)
	want := d("12000").Mul(d("181")).Add(d("8000").Mul(d("184"))).Div(d("365")).Mul(d("0.10")).Round(2)
	assert.True(t, daily.Equal(want), "got %s want %s", daily, want)
}

func TestDefaultBasisIsIgnoreDeposits(t *testing.T) {
	assert.Equal(t, domain.BasisIgnoreDeposits, New().InterestBasis())
	assert.Equal(t, domain.BasisIgnoreDeposits, New(WithInterestBasis("bogus")).InterestBasis())
}

func TestNegativeInterestPostsWithdrawal(t *testing.T) {
	l := newTestLedger(t, WithInterestBasis(domain.BasisStartingBalance))
	y := l.Year(2030)
	got, err := y.RecordInterestEarnedForYear(domain.AccountTaxDeferred, d("-0.05"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("-5000")))
	assert.True(t, y.EndingBalance(domain.AccountTaxDeferred).Equal(d("95000")))
}

func TestEndingBalanceByCategory(t *testing.T) {
	l := newTestLedger(t)
	y := l.Year(2030)
	_, err := y.Deposit(domain.AccountDisbursement, domain.CategorySocialSecurity, d("100"), domain.EndOfYear)
	require.NoError(t, err)
	_, err = y.Deposit(domain.AccountDisbursement, domain.CategoryPension, d("50"), domain.EndOfYear)
	require.NoError(t, err)

	assert.True(t, y.EndingBalance(domain.AccountDisbursement, domain.CategoryPension).Equal(d("50")))
	assert.True(t, y.Net(domain.AccountDisbursement).Equal(d("150")))
}

func scanThrough(a *Account, t time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions() {
		if !tx.Date.After(t) {
			total = total.Add(tx.Signed())
		}
	}
	return total
}

func TestRunningBalanceMatchesHistory(t *testing.T) {
	l := newTestLedger(t)
	y2030, y2031 := l.Year(2030), l.Year(2031)

	_, err := y2030.Deposit(domain.AccountSavings, domain.CategoryIncome, d("250.10"), domain.MidYear)
	require.NoError(t, err)
	_, err = y2030.Withdrawal(domain.AccountSavings, domain.CategoryDisbursement, d("4000"), domain.EndOfYear)
	require.NoError(t, err)

	acct, err := l.Account(domain.AccountSavings)
	require.NoError(t, err)
	end2030 := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.True(t, acct.Balance().Equal(d("6250.10")))
	assert.True(t, acct.BalanceThrough(end2030).Equal(scanThrough(acct, end2030)))

	_, err = y2031.Withdrawal(domain.AccountSavings, domain.CategoryDisbursement, d("1000"), domain.StartOfYear)
	require.NoError(t, err)

	// Earlier years still see their own ending balance once later years post.
	assert.True(t, y2030.EndingBalance(domain.AccountSavings).Equal(d("6250.10")))
	assert.True(t, y2031.EndingBalance(domain.AccountSavings).Equal(d("5250.10")))
	assert.True(t, y2031.StartingBalance(domain.AccountSavings).Equal(d("6250.10")))
	assert.True(t, acct.Balance().Equal(scanThrough(acct, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))))

	// Category filters bypass the running balance.
	assert.True(t, y2031.EndingBalance(domain.AccountSavings, domain.CategoryDisbursement).Equal(d("-5000")))

	// Withdrawals stay capped against the cached balance.
	got, err := y2031.Withdrawal(domain.AccountSavings, domain.CategoryDisbursement, d("9999"), domain.EndOfYear)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("5250.10")))
	assert.True(t, acct.Balance().IsZero())
}
