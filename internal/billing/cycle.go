// Package billing computes credit card statement cycles and the invoice view
// derived from them. Nothing here is persisted; invoices are rebuilt from the
// transaction list on every read.
package billing

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/carson-networks/household-server/internal/calendar"
)

var ErrInvalidDay = errors.New("statement day out of range 1-31")

// Cycle is the statement window accumulating charges on a reference date.
// A purchase belongs to the cycle when PreviousClosingDate < date <= ClosingDate.
type Cycle struct {
	ClosingDate         civil.Date
	PreviousClosingDate civil.Date
	PaymentDate         civil.Date
	BestPurchaseDate    civil.Date
}

// CycleFor returns the open cycle on today for a card closing on closingDay
// and due on paymentDay. Days 29-31 clamp to the end of shorter months.
func CycleFor(today civil.Date, closingDay, paymentDay int) (Cycle, error) {
	if closingDay < 1 || closingDay > 31 {
		return Cycle{}, fmt.Errorf("closingDay %d: %w", closingDay, ErrInvalidDay)
	}
	if paymentDay < 1 || paymentDay > 31 {
		return Cycle{}, fmt.Errorf("paymentDay %d: %w", paymentDay, ErrInvalidDay)
	}

	closingMonth := today.Month
	if today.Day > closingDay {
		closingMonth++
	}
	closing := calendar.Clamp(today.Year, closingMonth, closingDay)
	previous := calendar.Clamp(closing.Year, closing.Month-1, closingDay)

	// Payment always comes after closing: a due day on or before the
	// closing day belongs to the following month.
	paymentMonth := closing.Month
	if paymentDay <= closingDay {
		paymentMonth++
	}
	payment := calendar.Clamp(closing.Year, paymentMonth, paymentDay)

	return Cycle{
		ClosingDate:         closing,
		PreviousClosingDate: previous,
		PaymentDate:         payment,
		BestPurchaseDate:    closing.AddDays(1),
	}, nil
}

// Contains reports whether d falls inside the cycle window.
func (c Cycle) Contains(d civil.Date) bool {
	return calendar.InWindow(d, c.PreviousClosingDate, c.ClosingDate)
}

// Next is the cycle that opens the day after this one closes.
func (c Cycle) Next(closingDay, paymentDay int) (Cycle, error) {
	return CycleFor(c.BestPurchaseDate, closingDay, paymentDay)
}
