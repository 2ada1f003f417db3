// Package posting turns a transaction-creation request into the rows and
// balance adjustments it produces, and applies them to a ledger.
package posting

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/installment"
)

var (
	ErrInvalidRequest          = errors.New("invalid transaction request")
	ErrMissingTransferAccounts = errors.New("transfer requires fromAccount and toAccount")
)

// Request is a transaction as entered by a user. Installments of 0 means
// the field was not given and is read as 1.
type Request struct {
	Description  string
	Amount       decimal.Decimal
	Date         civil.Date
	Type         finance.TransactionType
	Category     string
	Account      string
	Installments int
	IsRecurring  bool
	Frequency    finance.Frequency

	FromAccount string
	ToAccount   string
}

// Adjustment moves the balance of a named account.
type Adjustment struct {
	Account string
	Delta   decimal.Decimal
}

// Posting is everything a request writes.
type Posting struct {
	Transactions []finance.Transaction
	Adjustments  []Adjustment
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Validate checks the request without looking at any ledger.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return invalid("description is required")
	}
	if r.Amount.IsZero() {
		return invalid("amount must not be zero")
	}
	if !r.Date.IsValid() {
		return invalid("date %v is not a calendar date", r.Date)
	}
	if !r.Type.Valid() {
		return invalid("unknown type %q", r.Type)
	}

	if r.Type == finance.TypeTransfer {
		if strings.TrimSpace(r.FromAccount) == "" || strings.TrimSpace(r.ToAccount) == "" {
			return ErrMissingTransferAccounts
		}
		if r.FromAccount == r.ToAccount {
			return invalid("transfer accounts must differ")
		}
		return nil
	}

	if strings.TrimSpace(r.Account) == "" {
		return invalid("account is required")
	}
	if !r.Frequency.Valid() {
		return invalid("unknown frequency %q", r.Frequency)
	}
	if r.IsRecurring && r.Frequency == "" {
		return invalid("recurring transactions need a frequency")
	}
	if r.Installments < 0 || r.Installments > installment.MaxCount {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, installment.ErrInvalidCount)
	}
	return nil
}

// signed applies the amount convention: expenses negative, income positive.
func signed(t finance.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == finance.TypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// Build validates r and produces its rows. Transfers become an expense on
// the source and an income on the destination and bypass installments.
func Build(r Request, newID installment.IDFunc) (Posting, error) {
	if err := r.Validate(); err != nil {
		return Posting{}, err
	}
	if r.Type == finance.TypeTransfer {
		return buildTransfer(r, newID)
	}

	count := r.Installments
	if count == 0 {
		count = 1
	}

	base := finance.Transaction{
		Description: r.Description,
		Amount:      signed(r.Type, r.Amount),
		Date:        r.Date,
		Type:        r.Type,
		Category:    r.Category,
		Account:     r.Account,
		IsRecurring: r.IsRecurring,
		Frequency:   r.Frequency,
	}
	rows, err := installment.Expand(base, count, newID)
	if err != nil {
		return Posting{}, err
	}
	return Posting{Transactions: rows}, nil
}

func buildTransfer(r Request, newID installment.IDFunc) (Posting, error) {
	outID, err := newID()
	if err != nil {
		return Posting{}, fmt.Errorf("posting.buildTransfer: %w", err)
	}
	inID, err := newID()
	if err != nil {
		return Posting{}, fmt.Errorf("posting.buildTransfer: %w", err)
	}

	amount := r.Amount.Abs()
	out := finance.Transaction{
		ID:          outID,
		Description: r.Description,
		Amount:      amount.Neg(),
		Date:        r.Date,
		Type:        finance.TypeExpense,
		Category:    finance.TransferCategory,
		Account:     r.FromAccount,
	}
	in := out
	in.ID = inID
	in.Amount = amount
	in.Type = finance.TypeIncome
	in.Account = r.ToAccount

	return Posting{
		Transactions: []finance.Transaction{out, in},
		Adjustments: []Adjustment{
			{Account: r.FromAccount, Delta: amount.Neg()},
			{Account: r.ToAccount, Delta: amount},
		},
	}, nil
}

// Apply writes p into l. Balance adjustments run first; if any account is
// missing the original ledger is returned untouched with the error.
func Apply(l finance.Ledger, p Posting) (finance.Ledger, error) {
	next := l
	for _, adj := range p.Adjustments {
		var err error
		if next, err = next.AdjustBalance(adj.Account, adj.Delta); err != nil {
			return l, err
		}
	}
	return next.InsertTransactions(p.Transactions...), nil
}
