// Package finance holds the household ledger model: transactions, accounts
// and cards, and the immutable operations over a ledger snapshot.
package finance

import (
	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransferCategory marks both rows synthesized from a transfer.
const TransferCategory = "Transfer"

type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// Valid reports whether f is a known frequency. The empty frequency is
// valid and means the transaction does not recur.
func (f Frequency) Valid() bool {
	switch f {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyAnnual:
		return true
	}
	return false
}

// Transaction is a single money movement. Amount is signed: negative for
// expenses, positive for income. Account holds the name of an account or
// card, not its ID.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        civil.Date      `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	Paid        bool            `json:"paid,omitempty"`

	IsRecurring bool      `json:"isRecurring,omitempty"`
	Frequency   Frequency `json:"frequency,omitempty"`

	InstallmentGroupID *uuid.UUID `json:"installmentGroupId,omitempty"`
	CurrentInstallment int        `json:"currentInstallment,omitempty"`
	TotalInstallments  int        `json:"totalInstallments,omitempty"`
}

// IsInstallment reports whether t is one row of an installment group.
func (t Transaction) IsInstallment() bool {
	return t.InstallmentGroupID != nil && t.TotalInstallments > 1
}

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCash, AccountTypeInvestment, AccountTypeOther:
		return true
	}
	return false
}

// Account is a balance-carrying account. Name is the join key used by
// Transaction.Account.
type Account struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// Card is a credit card with a monthly statement cycle.
type Card struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	ClosingDay int             `json:"closingDay"`
	PaymentDay int             `json:"paymentDay"`
	Limit      decimal.Decimal `json:"limit"`
}
