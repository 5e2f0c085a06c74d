// Package ledger records every account movement of a simulation run and
// answers year-scoped balance questions about them.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	"github.com/danbrewer/LetsRetire-sub001/pkg/dateutil"
)

// Ledger owns the accounts of a single simulation run. It is not safe for
// concurrent use; each run builds its own.
type Ledger struct {
	accounts map[domain.AccountType]*Account
	basis    domain.InterestBasis
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithInterestBasis selects how RecordInterestEarnedForYear computes interest.
func WithInterestBasis(b domain.InterestBasis) Option {
	return func(l *Ledger) {
		if b.Valid() {
			l.basis = b
		}
	}
}

// New returns a ledger with no open accounts.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		accounts: make(map[domain.AccountType]*Account),
		basis:    domain.BasisIgnoreDeposits,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewWithAccounts opens every account type with a zero balance.
func NewWithAccounts(opts ...Option) *Ledger {
	l := New(opts...)
	for _, t := range domain.AccountTypes {
		l.accounts[t] = newAccount(t)
	}
	return l
}

// InterestBasis reports the configured accrual basis.
func (l *Ledger) InterestBasis() domain.InterestBasis {
	return l.basis
}

// Open creates an account and, when opening is positive, posts it as an
// OpeningBalance deposit dated the last day of the year before startYear.
func (l *Ledger) Open(t domain.AccountType, opening decimal.Decimal, startYear int) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, t)
	}
	if opening.IsNegative() {
		return fmt.Errorf("%w: opening balance %s for %s", domain.ErrInvalidAmount, opening, t)
	}
	acct, ok := l.accounts[t]
	if ok && len(acct.transactions) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, t)
	}
	if !ok {
		acct = newAccount(t)
		l.accounts[t] = acct
	}
	if opening.IsPositive() {
		tx, err := NewTransaction(domain.Deposit, domain.CategoryOpeningBalance, opening, dateutil.YearEnd(startYear-1), "opening balance")
		if err != nil {
			return err
		}
		acct.record(tx)
	}
	return nil
}

// Account looks up an open account.
func (l *Ledger) Account(t domain.AccountType) (*Account, error) {
	acct, ok := l.accounts[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrAccountNotFound, t)
	}
	return acct, nil
}

// Year returns the accounting facade for one tax year.
func (l *Ledger) Year(year int) *AccountingYear {
	return &AccountingYear{ledger: l, year: year}
}

// Transactions returns every transaction of the account in posting order, or
// nil when the account is not open.
func (l *Ledger) Transactions(t domain.AccountType) []Transaction {
	acct, ok := l.accounts[t]
	if !ok {
		return nil
	}
	return acct.Transactions()
}
