package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
)

const defaultLimit = 20

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

// TransactionFilter narrows a listing. An empty Account lists every row.
type TransactionFilter struct {
	Account string
}

// TransactionService handles transaction reads.
type TransactionService struct {
	reader LedgerReader
}

func NewTransactionService(reader LedgerReader) *TransactionService {
	return &TransactionService{reader: reader}
}

// ListTransactions returns a page of the household's transactions, newest
// first, using offset cursor pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, household uuid.UUID, filter TransactionFilter, cursor *TransactionCursor) ([]finance.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
	}

	l, err := s.reader.Ledger(ctx, household)
	if err != nil {
		return nil, nil, err
	}

	rows := l.Transactions
	if filter.Account != "" {
		rows = l.TransactionsForAccount(filter.Account)
	}

	if offset >= len(rows) {
		return nil, nil, nil
	}
	rows = rows[offset:]

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	page := make([]finance.Transaction, len(rows))
	copy(page, rows)
	return page, nextCursor, nil
}

// GetTransaction looks a single row up.
func (s *TransactionService) GetTransaction(ctx context.Context, household, id uuid.UUID) (finance.Transaction, error) {
	l, err := s.reader.Ledger(ctx, household)
	if err != nil {
		return finance.Transaction{}, err
	}
	tx, ok := l.FindTransaction(id)
	if !ok {
		return finance.Transaction{}, fmt.Errorf("transaction %s: %w", id, finance.ErrTransactionNotFound)
	}
	return tx, nil
}
