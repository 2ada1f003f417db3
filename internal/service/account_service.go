package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
)

// AccountService handles account reads.
type AccountService struct {
	reader LedgerReader
}

func NewAccountService(reader LedgerReader) *AccountService {
	return &AccountService{reader: reader}
}

// ListAccounts returns the household's accounts in creation order.
func (s *AccountService) ListAccounts(ctx context.Context, household uuid.UUID) ([]finance.Account, error) {
	l, err := s.reader.Ledger(ctx, household)
	if err != nil {
		return nil, err
	}
	out := make([]finance.Account, len(l.Accounts))
	copy(out, l.Accounts)
	return out, nil
}

// CardService handles card reads.
type CardService struct {
	reader LedgerReader
}

func NewCardService(reader LedgerReader) *CardService {
	return &CardService{reader: reader}
}

// ListCards returns the household's cards in creation order.
func (s *CardService) ListCards(ctx context.Context, household uuid.UUID) ([]finance.Card, error) {
	l, err := s.reader.Ledger(ctx, household)
	if err != nil {
		return nil, err
	}
	out := make([]finance.Card, len(l.Cards))
	copy(out, l.Cards)
	return out, nil
}
