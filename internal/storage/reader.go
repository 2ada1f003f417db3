package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/storage/kv"
)

// Reader serves household ledgers from a cache that is dropped whenever the
// store reports a change to one of the household's documents. The returned
// ledger is shared and its slices must not be modified.
type Reader struct {
	store  kv.Store
	logger *logrus.Logger

	mu     sync.Mutex
	cache  map[uuid.UUID]finance.Ledger
	gen    map[uuid.UUID]uint64
	unsubs map[uuid.UUID][]func()
}

func NewReader(store kv.Store, logger *logrus.Logger) *Reader {
	return &Reader{
		store:  store,
		logger: logger,
		cache:  make(map[uuid.UUID]finance.Ledger),
		gen:    make(map[uuid.UUID]uint64),
		unsubs: make(map[uuid.UUID][]func()),
	}
}

func (r *Reader) Ledger(ctx context.Context, household uuid.UUID) (finance.Ledger, error) {
	r.mu.Lock()
	if l, ok := r.cache[household]; ok {
		r.mu.Unlock()
		return l, nil
	}
	gen := r.gen[household]
	_, subscribed := r.unsubs[household]
	r.mu.Unlock()

	if !subscribed {
		subscribed = r.subscribe(ctx, household)
	}

	l, _, err := loadLedger(ctx, r.store, household)
	if err != nil {
		return finance.Ledger{}, err
	}

	if subscribed {
		r.mu.Lock()
		if r.gen[household] == gen {
			r.cache[household] = l
		}
		r.mu.Unlock()
	}
	return l, nil
}

// Invalidate drops the cached ledger of household.
func (r *Reader) Invalidate(household uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, household)
	r.gen[household]++
}

// subscribe registers change callbacks for every collection of household and
// reports whether the cache may be used for it.
func (r *Reader) subscribe(ctx context.Context, household uuid.UUID) bool {
	unsubs := make([]func(), 0, len(collections))
	for _, collection := range collections {
		path := Key(household, collection)
		unsub, err := r.store.Subscribe(ctx, path, func([]byte) { r.Invalidate(household) })
		if err != nil {
			r.logger.WithError(err).WithField("path", path).Warn("StorageReader.subscribe.failed")
			for _, u := range unsubs {
				u()
			}
			return false
		}
		unsubs = append(unsubs, unsub)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.unsubs[household]; ok {
		for _, u := range unsubs {
			u()
		}
		return true
	}
	r.unsubs[household] = unsubs
	return true
}

// Close cancels every subscription and empties the cache.
func (r *Reader) Close() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = make(map[uuid.UUID][]func())
	r.cache = make(map[uuid.UUID]finance.Ledger)
	r.mu.Unlock()

	for _, list := range unsubs {
		for _, u := range list {
			u()
		}
	}
}

// loadLedger reads every collection of household straight from the store and
// also returns the raw documents keyed by path.
func loadLedger(ctx context.Context, store kv.Store, household uuid.UUID) (finance.Ledger, map[string][]byte, error) {
	raw := make(map[string][]byte, len(collections))
	for _, collection := range collections {
		path := Key(household, collection)
		value, err := store.Get(ctx, path)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return finance.Ledger{}, nil, fmt.Errorf("load ledger: %w", err)
		}
		raw[path] = value
	}

	var (
		l   finance.Ledger
		err error
	)
	if l.Transactions, err = decode[finance.Transaction](TransactionsKey(household), raw[TransactionsKey(household)]); err != nil {
		return finance.Ledger{}, nil, err
	}
	if l.Accounts, err = decode[finance.Account](AccountsKey(household), raw[AccountsKey(household)]); err != nil {
		return finance.Ledger{}, nil, err
	}
	if l.Cards, err = decode[finance.Card](CardsKey(household), raw[CardsKey(household)]); err != nil {
		return finance.Ledger{}, nil, err
	}
	finance.SortByDateDesc(l.Transactions)
	return l, raw, nil
}
