package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/storage/kv"
)

var ErrWriterClosed = errors.New("writer already committed or rolled back")

var emptyDocument = []byte("[]")

// Writer stages a new ledger for one household. Only collections whose
// encoding changed are written on Commit, all in one SetMany call, so a
// failed commit leaves every document as it was.
type Writer struct {
	store     kv.Store
	reader    *Reader
	household uuid.UUID
	raw       map[string][]byte
	ledger    finance.Ledger
	closed    bool
}

func newWriter(ctx context.Context, store kv.Store, reader *Reader, household uuid.UUID) (*Writer, error) {
	l, raw, err := loadLedger(ctx, store, household)
	if err != nil {
		return nil, err
	}
	return &Writer{
		store:     store,
		reader:    reader,
		household: household,
		raw:       raw,
		ledger:    l,
	}, nil
}

func (w *Writer) Household() uuid.UUID {
	return w.household
}

// Ledger returns the staged ledger, or the loaded one if nothing was staged.
func (w *Writer) Ledger() finance.Ledger {
	return w.ledger
}

func (w *Writer) Stage(l finance.Ledger) {
	w.ledger = l
}

func (w *Writer) Commit(ctx context.Context) error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true

	docs := make(map[string][]byte, len(collections))
	var err error
	if docs[AccountsKey(w.household)], err = encode(w.ledger.Accounts); err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if docs[CardsKey(w.household)], err = encode(w.ledger.Cards); err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}
	if docs[TransactionsKey(w.household)], err = encode(w.ledger.Transactions); err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	if w.reader != nil {
		defer w.reader.Invalidate(w.household)
	}
	var changed []kv.Entry
	for _, collection := range collections {
		path := Key(w.household, collection)
		if bytes.Equal(docs[path], w.raw[path]) || (w.raw[path] == nil && bytes.Equal(docs[path], emptyDocument)) {
			continue
		}
		changed = append(changed, kv.Entry{Path: path, Value: docs[path]})
	}
	if len(changed) == 0 {
		return nil
	}
	if err := w.store.SetMany(ctx, changed); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback discards the staged ledger. Nothing has reached the store yet.
func (w *Writer) Rollback() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	w.ledger = finance.Ledger{}
	return nil
}
