package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/recurrence"
)

type CalendarService struct {
	reader LedgerReader
}

func NewCalendarService(reader LedgerReader) *CalendarService {
	return &CalendarService{reader: reader}
}

// Month lists stored and projected entries for one calendar month.
func (s *CalendarService) Month(ctx context.Context, household uuid.UUID, year int, month time.Month) ([]recurrence.Entry, error) {
	l, err := s.reader.Ledger(ctx, household)
	if err != nil {
		return nil, err
	}
	return recurrence.MonthView(l.Transactions, year, month), nil
}
