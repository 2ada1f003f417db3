package billing

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/household-server/internal/finance"
)

// MaxForecastCycles bounds Forecast.
const MaxForecastCycles = 24

var ErrInvalidForecast = errors.New("forecast cycles out of range")

// Invoice is the derived statement of one card for one cycle.
type Invoice struct {
	Card finance.Card
	Cycle
	Total          decimal.Decimal
	AvailableLimit decimal.Decimal
	Transactions   []finance.Transaction
}

// chargedTo reports whether tx is a purchase on the card. The join is by
// exact name.
func chargedTo(card finance.Card, tx finance.Transaction) bool {
	return tx.Account == card.Name && tx.Type == finance.TypeExpense
}

// InvoiceTransactions returns the card's expenses inside the cycle window,
// newest first.
func InvoiceTransactions(card finance.Card, txs []finance.Transaction, cycle Cycle) []finance.Transaction {
	out := []finance.Transaction{}
	for _, tx := range txs {
		if chargedTo(card, tx) && cycle.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	finance.SortByDateDesc(out)
	return out
}

// Total sums the absolute amounts of txs.
func Total(txs []finance.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount.Abs())
	}
	return total
}

// committed sums every charge from the open cycle onward, which includes
// installments already scheduled into later statements.
func committed(card finance.Card, txs []finance.Transaction, cycle Cycle) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if chargedTo(card, tx) && tx.Date.After(cycle.PreviousClosingDate) {
			total = total.Add(tx.Amount.Abs())
		}
	}
	return total
}

// BuildInvoice computes the open invoice of card on today.
func BuildInvoice(card finance.Card, txs []finance.Transaction, today civil.Date) (Invoice, error) {
	cycle, err := CycleFor(today, card.ClosingDay, card.PaymentDay)
	if err != nil {
		return Invoice{}, fmt.Errorf("card %q: %w", card.Name, err)
	}
	return invoiceFor(card, txs, cycle), nil
}

func invoiceFor(card finance.Card, txs []finance.Transaction, cycle Cycle) Invoice {
	selected := InvoiceTransactions(card, txs, cycle)
	return Invoice{
		Card:           card,
		Cycle:          cycle,
		Total:          Total(selected),
		AvailableLimit: card.Limit.Sub(committed(card, txs, cycle)),
		Transactions:   selected,
	}
}

// Forecast returns the open invoice on today followed by the next cycles,
// n invoices in total.
func Forecast(card finance.Card, txs []finance.Transaction, today civil.Date, n int) ([]Invoice, error) {
	if n < 1 || n > MaxForecastCycles {
		return nil, fmt.Errorf("%d: %w", n, ErrInvalidForecast)
	}
	cycle, err := CycleFor(today, card.ClosingDay, card.PaymentDay)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", card.Name, err)
	}

	invoices := make([]Invoice, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if cycle, err = cycle.Next(card.ClosingDay, card.PaymentDay); err != nil {
				return nil, err
			}
		}
		invoices = append(invoices, invoiceFor(card, txs, cycle))
	}
	return invoices, nil
}
