package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// Transaction is an immutable movement of money into or out of one account.
// Amount is always non-negative; Type carries the direction.
type Transaction struct {
	ID       uuid.UUID              `json:"id"`
	Amount   decimal.Decimal        `json:"amount"`
	Type     domain.TransactionType `json:"type"`
	Category domain.Category        `json:"category"`
	Date     time.Time              `json:"date"`
	Memo     string                 `json:"memo,omitempty"`
}

// NewTransaction validates the fields and stamps a fresh ID.
func NewTransaction(typ domain.TransactionType, category domain.Category, amount decimal.Decimal, date time.Time, memo string) (Transaction, error) {
	if !typ.Valid() {
		return Transaction{}, fmt.Errorf("%w: %q", domain.ErrInvalidTransactionType, typ)
	}
	if !category.Valid() {
		return Transaction{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: %s is negative", domain.ErrInvalidAmount, amount)
	}
	return Transaction{
		ID:       uuid.New(),
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     date,
		Memo:     memo,
	}, nil
}

// Signed returns the amount as it affects the account balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == domain.Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) matches(categories []domain.Category) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if t.Category == c {
			return true
		}
	}
	return false
}
