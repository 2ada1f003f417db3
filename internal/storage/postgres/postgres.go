// Package postgres keeps documents in the kv_store table and uses
// LISTEN/NOTIFY on the kv_store_changes channel for Subscribe.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/household-server/internal/storage/kv"
)

const (
	Table         = "kv_store"
	NotifyChannel = "kv_store_changes"

	upsertQuery = `INSERT INTO kv_store (path, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (path) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	notifyQuery = `SELECT pg_notify($1, $2)`
)

type Store struct {
	db      bob.DB
	sqlDB   *sql.DB
	connStr string
	logger  *logrus.Logger

	listenMu sync.Mutex

	mu       sync.Mutex
	listener *pq.Listener
	subs     map[string]map[int]func([]byte)
	nextID   int
	done     chan struct{}
}

var _ kv.Store = (*Store)(nil)

var ErrClosed = errors.New("postgres store closed")

// New opens a pool on connStr, which the listener also dials. The kv_store table is created by the migrations.
func New(connStr string, logger *logrus.Logger) (*Store, error) {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return &Store{
		db:      bob.NewDB(sqlDB),
		sqlDB:   sqlDB,
		connStr: connStr,
		logger:  logger,
		subs:    make(map[string]map[int]func([]byte)),
		done:    make(chan struct{}),
	}, nil
}

func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	q := psql.Select(
		sm.Columns("value"),
		sm.From(Table),
		sm.Where(psql.Quote("path").EQ(psql.Arg(path))),
	)
	value, err := bob.One(ctx, s.db, q, scan.SingleColumnMapper[[]byte])
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", path, kv.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, path string, value []byte) error {
	return s.SetMany(ctx, []kv.Entry{{Path: path, Value: value}})
}

// SetMany upserts every row and notifies listeners in one transaction, so
// either all values land or none do, and notifications are only delivered
// once the new values are visible.
func (s *Store) SetMany(ctx context.Context, entries []kv.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set: begin: %w", err)
	}
	for _, e := range entries {
		if _, err = tx.ExecContext(ctx, upsertQuery, e.Path, e.Value); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("set %s: upsert: %w", e.Path, err)
		}
		if _, err = tx.ExecContext(ctx, notifyQuery, NotifyChannel, e.Path); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("set %s: notify: %w", e.Path, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("set: commit: %w", err)
	}
	return nil
}

func (s *Store) Subscribe(ctx context.Context, path string, onChange func([]byte)) (func(), error) {
	if err := s.ensureListener(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	if s.subs[path] == nil {
		s.subs[path] = make(map[int]func([]byte))
	}
	s.subs[path][id] = onChange

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs[path], id)
			if len(s.subs[path]) == 0 {
				delete(s.subs, path)
			}
		})
	}, nil
}

// ensureListener starts the shared LISTEN connection. The dial runs under
// listenMu only, so deliver and Close never wait on the network.
func (s *Store) ensureListener(ctx context.Context) error {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()

	s.mu.Lock()
	started := s.listener != nil
	s.mu.Unlock()
	if started {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	listener := pq.NewListener(s.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			s.logger.WithError(err).WithField("event", ev).Warn("PostgresStore.Listener.event")
		}
	})
	if err := listener.Listen(NotifyChannel); err != nil {
		_ = listener.Close()
		return fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		_ = listener.Close()
		return ErrClosed
	default:
	}
	s.listener = listener
	go s.dispatch(listener)
	return nil
}

func (s *Store) dispatch(listener *pq.Listener) {
	for {
		select {
		case <-s.done:
			return
		case n, ok := <-listener.Notify:
			if !ok {
				return
			}
			if n == nil {
				// The connection was re-established and notifications may
				// have been missed, so every subscribed path is refreshed.
				for _, path := range s.subscribedPaths() {
					s.deliver(path)
				}
				continue
			}
			s.deliver(n.Extra)
		}
	}
}

func (s *Store) subscribedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.subs))
	for path := range s.subs {
		paths = append(paths, path)
	}
	return paths
}

func (s *Store) deliver(path string) {
	s.mu.Lock()
	callbacks := make([]func([]byte), 0, len(s.subs[path]))
	for _, cb := range s.subs[path] {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()
	if len(callbacks) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	value, err := s.Get(ctx, path)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		s.logger.WithError(err).WithField("path", path).Error("PostgresStore.deliver.get")
		return
	}
	for _, cb := range callbacks {
		cb(value)
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return nil
	default:
		close(s.done)
	}
	listener := s.listener
	s.mu.Unlock()

	var errs []error
	if listener != nil {
		errs = append(errs, listener.Close())
	}
	errs = append(errs, s.sqlDB.Close())
	return errors.Join(errs...)
}
