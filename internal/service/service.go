package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/finance"
)

// LedgerReader is the read side of storage.
type LedgerReader interface {
	Ledger(ctx context.Context, household uuid.UUID) (finance.Ledger, error)
}

// Clock supplies "today" in the household's zone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) today() civil.Date {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return calendar.Today(now(), c.Location)
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Card        *CardService
	Invoice     *InvoiceService
	Calendar    *CalendarService
}

// NewService creates a new Service reading through reader.
func NewService(reader LedgerReader, clock Clock) *Service {
	return &Service{
		Transaction: NewTransactionService(reader),
		Account:     NewAccountService(reader),
		Card:        NewCardService(reader),
		Invoice:     NewInvoiceService(reader, clock),
		Calendar:    NewCalendarService(reader),
	}
}
