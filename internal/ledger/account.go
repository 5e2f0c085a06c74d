package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// Account is an append-only list of transactions for one account type. It
// keeps a running balance so queries dated at or after the latest posting
// need no scan.
type Account struct {
	Type         domain.AccountType
	transactions []Transaction
	balance      decimal.Decimal
	latest       time.Time
}

func newAccount(t domain.AccountType) *Account {
	return &Account{Type: t, balance: decimal.Zero}
}

func (a *Account) record(tx Transaction) {
	a.transactions = append(a.transactions, tx)
	a.balance = a.balance.Add(tx.Signed())
	if tx.Date.After(a.latest) {
		a.latest = tx.Date
	}
}

// Transactions returns a copy of every transaction in posting order.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// BalanceBefore sums signed amounts dated strictly before t.
func (a *Account) BalanceBefore(t time.Time, categories ...domain.Category) decimal.Decimal {
	if len(categories) == 0 && a.latest.Before(t) {
		return a.balance
	}
	total := decimal.Zero
	for _, tx := range a.transactions {
		if tx.Date.Before(t) && tx.matches(categories) {
			total = total.Add(tx.Signed())
		}
	}
	return total
}

// BalanceThrough sums signed amounts dated on or before t.
func (a *Account) BalanceThrough(t time.Time, categories ...domain.Category) decimal.Decimal {
	if len(categories) == 0 && !a.latest.After(t) {
		return a.balance
	}
	total := decimal.Zero
	for _, tx := range a.transactions {
		if !tx.Date.After(t) && tx.matches(categories) {
			total = total.Add(tx.Signed())
		}
	}
	return total
}

// Balance is the sum of every signed amount ever posted.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// inYear returns the transactions dated within the tax year.
func (a *Account) inYear(year int) []Transaction {
	var out []Transaction
	for _, tx := range a.transactions {
		if tx.Date.Year() == year {
			out = append(out, tx)
		}
	}
	return out
}
