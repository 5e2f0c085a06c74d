package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors raised by the ledger and tax model.
var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidCategory        = errors.New("invalid transaction category")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidFrequency       = errors.New("invalid posting frequency")
	ErrInvalidFilingStatus    = errors.New("invalid filing status")
	ErrInvalidInterestBasis   = errors.New("invalid interest basis")
	ErrInvalidBracketTable    = errors.New("invalid tax bracket table")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrDuplicateAccount       = errors.New("account already open")
)

// AccountType identifies one account held in the ledger.
type AccountType string

const (
	AccountSavings      AccountType = "savings"
	AccountTaxDeferred  AccountType = "tax_deferred"
	AccountRoth         AccountType = "roth"
	AccountWithholdings AccountType = "withholdings"
	AccountDisbursement AccountType = "disbursement"
)

// AccountTypes lists every account type in ledger display order.
var AccountTypes = []AccountType{
	AccountSavings,
	AccountTaxDeferred,
	AccountRoth,
	AccountWithholdings,
	AccountDisbursement,
}

// DefaultWithdrawalOrder is the waterfall used when none is configured.
var DefaultWithdrawalOrder = []AccountType{AccountSavings, AccountRoth, AccountTaxDeferred}

// Valid reports whether the account type is a member of the enumeration.
func (a AccountType) Valid() bool {
	for _, t := range AccountTypes {
		if a == t {
			return true
		}
	}
	return false
}

// Spendable reports whether the account may be drawn to fund spending.
func (a AccountType) Spendable() bool {
	return a == AccountSavings || a == AccountRoth || a == AccountTaxDeferred
}

// UnmarshalText rejects unknown account types while decoding inputs.
func (a *AccountType) UnmarshalText(text []byte) error {
	v := AccountType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, string(text))
	}
	*a = v
	return nil
}

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// Valid reports whether the transaction type is a member of the enumeration.
func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// Category classifies why money moved.
type Category string

const (
	CategoryInterest        Category = "interest"
	CategoryContribution    Category = "contribution"
	CategoryDisbursement    Category = "disbursement"
	CategoryIncome          Category = "income"
	CategoryTaxes           Category = "taxes"
	CategorySocialSecurity  Category = "social_security"
	CategoryPension         Category = "pension"
	CategoryTrad401k        Category = "trad_401k"
	CategoryTradRoth        Category = "trad_roth"
	CategorySavings         Category = "savings"
	CategoryRMD             Category = "rmd"
	CategoryTaxRefund       Category = "tax_refund"
	CategoryTaxPayment      Category = "tax_payment"
	CategoryOtherNonTaxable Category = "other_non_taxable"
	CategoryOpeningBalance  Category = "opening_balance"
)

var categories = map[Category]struct{}{
	CategoryInterest:        {},
	CategoryContribution:    {},
	CategoryDisbursement:    {},
	CategoryIncome:          {},
	CategoryTaxes:           {},
	CategorySocialSecurity:  {},
	CategoryPension:         {},
	CategoryTrad401k:        {},
	CategoryTradRoth:        {},
	CategorySavings:         {},
	CategoryRMD:             {},
	CategoryTaxRefund:       {},
	CategoryTaxPayment:      {},
	CategoryOtherNonTaxable: {},
	CategoryOpeningBalance:  {},
}

// Valid reports whether the category is a member of the enumeration.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Frequency is the cadence used to spread an annual amount across a tax year.
type Frequency string

const (
	Monthly        Frequency = "monthly"
	Quarterly      Frequency = "quarterly"
	SemiAnnual     Frequency = "semi_annual"
	AnnualLeading  Frequency = "annual_leading"
	AnnualTrailing Frequency = "annual_trailing"
	Daily          Frequency = "daily"
)

// Valid reports whether the frequency is a member of the enumeration.
func (f Frequency) Valid() bool {
	switch f {
	case Monthly, Quarterly, SemiAnnual, AnnualLeading, AnnualTrailing, Daily:
		return true
	}
	return false
}

// UnmarshalText rejects unknown frequencies while decoding inputs.
func (f *Frequency) UnmarshalText(text []byte) error {
	v := Frequency(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, string(text))
	}
	*f = v
	return nil
}

// Timing places a single transaction inside the tax year.
type Timing int

const (
	EndOfYear Timing = iota
	StartOfYear
	MidYear
)

// InterestBasis selects which balance interest is computed on.
type InterestBasis string

const (
	// BasisIgnoreDeposits accrues on the opening balance less this year's withdrawals.
	BasisIgnoreDeposits  InterestBasis = "ignore_deposits"
	BasisStartingBalance InterestBasis = "starting_balance"
	BasisAverageBalance  InterestBasis = "average_balance"
	BasisDailyRolling    InterestBasis = "daily_rolling"
)

// Valid reports whether the basis is a member of the enumeration.
func (b InterestBasis) Valid() bool {
	switch b {
	case BasisIgnoreDeposits, BasisStartingBalance, BasisAverageBalance, BasisDailyRolling:
		return true
	}
	return false
}

// UnmarshalText rejects unknown interest bases while decoding inputs.
func (b *InterestBasis) UnmarshalText(text []byte) error {
	v := InterestBasis(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidInterestBasis, string(text))
	}
	*b = v
	return nil
}

// FilingStatus is the federal filing status used to pick tax tables.
type FilingStatus string

const (
	MarriedFilingJointly FilingStatus = "mfj"
	Single               FilingStatus = "single"
)

// Valid reports whether the filing status is supported.
func (f FilingStatus) Valid() bool {
	return f == MarriedFilingJointly || f == Single
}

// ParseFilingStatus accepts the short codes plus a few spelled-out aliases.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mfj", "married", "married_filing_jointly", "joint":
		return MarriedFilingJointly, nil
	case "single", "s":
		return Single, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilingStatus, s)
}

// UnmarshalText rejects unknown filing statuses while decoding inputs.
func (f *FilingStatus) UnmarshalText(text []byte) error {
	v, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
