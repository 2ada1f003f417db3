package service

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/billing"
	"github.com/carson-networks/household-server/internal/finance"
)

// InvoiceService derives card statements from the ledger.
type InvoiceService struct {
	reader LedgerReader
	clock  Clock
}

func NewInvoiceService(reader LedgerReader, clock Clock) *InvoiceService {
	return &InvoiceService{reader: reader, clock: clock}
}

func (s *InvoiceService) card(ctx context.Context, household, cardID uuid.UUID) (finance.Card, finance.Ledger, error) {
	l, err := s.reader.Ledger(ctx, household)
	if err != nil {
		return finance.Card{}, finance.Ledger{}, err
	}
	card, ok := l.CardByID(cardID)
	if !ok {
		return finance.Card{}, finance.Ledger{}, fmt.Errorf("card %s: %w", cardID, finance.ErrCardNotFound)
	}
	return card, l, nil
}

// Invoice returns the open invoice of the card on reference, or today when
// reference is nil.
func (s *InvoiceService) Invoice(ctx context.Context, household, cardID uuid.UUID, reference *civil.Date) (billing.Invoice, error) {
	card, l, err := s.card(ctx, household, cardID)
	if err != nil {
		return billing.Invoice{}, err
	}
	today := s.clock.today()
	if reference != nil {
		today = *reference
	}
	return billing.BuildInvoice(card, l.Transactions, today)
}

// Forecast returns months invoices starting with the open one.
func (s *InvoiceService) Forecast(ctx context.Context, household, cardID uuid.UUID, months int) ([]billing.Invoice, error) {
	card, l, err := s.card(ctx, household, cardID)
	if err != nil {
		return nil, err
	}
	return billing.Forecast(card, l.Transactions, s.clock.today(), months)
}
