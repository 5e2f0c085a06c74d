package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

//go:generate mockgen -source=portioner.go -destination=mocks/mocks.go -package=mocks AccountPortioner

// AccountFunds describes one candidate funding account.
type AccountFunds struct {
	Account   domain.AccountType
	Available decimal.Decimal
	Enabled   bool
}

// Portion is a proposed withdrawal per account. Accounts not present are
// asked for nothing.
type Portion map[domain.AccountType]decimal.Decimal

// Ask returns the amount proposed for the account.
func (p Portion) Ask(account domain.AccountType) decimal.Decimal {
	if v, ok := p[account]; ok {
		return v
	}
	return decimal.Zero
}

// Total is the sum of every ask.
func (p Portion) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range p {
		total = total.Add(v)
	}
	return total
}

// AccountPortioner splits a funding shortfall across accounts. It proposes
// amounts only and never posts transactions.
type AccountPortioner interface {
	Portion(shortfall decimal.Decimal, funds []AccountFunds) Portion
}

// WaterfallPortioner exhausts each account in priority order before moving
// to the next.
type WaterfallPortioner struct {
	Order []domain.AccountType
}

// NewWaterfallPortioner uses the default order when none is given.
func NewWaterfallPortioner(order ...domain.AccountType) *WaterfallPortioner {
	if len(order) == 0 {
		order = domain.DefaultWithdrawalOrder
	}
	return &WaterfallPortioner{Order: order}
}

// Portion implements AccountPortioner.
func (w *WaterfallPortioner) Portion(shortfall decimal.Decimal, funds []AccountFunds) Portion {
	out := Portion{}
	if !shortfall.IsPositive() {
		return out
	}

	byAccount := make(map[domain.AccountType]AccountFunds, len(funds))
	for _, f := range funds {
		byAccount[f.Account] = f
	}

	remaining := shortfall
	for _, account := range w.Order {
		f, ok := byAccount[account]
		if !ok || !f.Enabled || !f.Available.IsPositive() {
			continue
		}
		take := decimal.Min(remaining, f.Available)
		out[account] = take
		remaining = remaining.Sub(take)
		if !remaining.IsPositive() {
			break
		}
	}
	return out
}
