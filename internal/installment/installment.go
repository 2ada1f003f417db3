// Package installment spreads a purchase over monthly installments.
package installment

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/finance"
)

// MaxCount caps the number of installments of a single purchase.
const MaxCount = 120

var ErrInvalidCount = errors.New("installment count out of range")

// IDFunc returns a fresh identifier. uuid.NewV4 satisfies it.
type IDFunc func() (uuid.UUID, error)

func checkCount(n int) error {
	if n < 1 || n > MaxCount {
		return fmt.Errorf("%d not in 1-%d: %w", n, MaxCount, ErrInvalidCount)
	}
	return nil
}

// Split divides amount into n parts. Every part but the last is amount/n
// truncated toward zero to cents; the last part takes the remainder so the
// parts always add back up to amount exactly.
func Split(amount decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	parts := make([]decimal.Decimal, n)
	base := amount.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = base
		allocated = allocated.Add(base)
	}
	parts[n-1] = amount.Sub(allocated)
	return parts, nil
}

// Expand turns tx into n rows. With n == 1 the transaction is kept as a
// single row without a group. With n > 1 every row gets a fresh ID, a
// shared group ID, its position 1..n and a date n-1 months after tx.Date
// (day clamped to the month). Installments never recur.
func Expand(tx finance.Transaction, n int, newID IDFunc) ([]finance.Transaction, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	if n == 1 {
		if tx.ID == uuid.Nil {
			id, err := newID()
			if err != nil {
				return nil, fmt.Errorf("installment.Expand: %w", err)
			}
			tx.ID = id
		}
		return []finance.Transaction{tx}, nil
	}

	amounts, err := Split(tx.Amount, n)
	if err != nil {
		return nil, err
	}
	groupID, err := newID()
	if err != nil {
		return nil, fmt.Errorf("installment.Expand group: %w", err)
	}

	rows := make([]finance.Transaction, n)
	for i := range rows {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("installment.Expand row %d: %w", i+1, err)
		}
		row := tx
		row.ID = id
		row.Amount = amounts[i]
		row.Date = calendar.AddMonths(tx.Date, i)
		row.IsRecurring = false
		row.Frequency = ""
		row.InstallmentGroupID = &groupID
		row.CurrentInstallment = i + 1
		row.TotalInstallments = n
		rows[i] = row
	}
	return rows, nil
}
