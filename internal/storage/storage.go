package storage

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/household-server/internal/config"
	"github.com/carson-networks/household-server/internal/storage/kv"
	"github.com/carson-networks/household-server/internal/storage/memory"
	"github.com/carson-networks/household-server/internal/storage/postgres"
	"github.com/carson-networks/household-server/internal/storage/redis"
)

// KeyValueStore is the persistence collaborator the ledger lives in.
type KeyValueStore = kv.Store

var ErrNotFound = kv.ErrNotFound

type Storage struct {
	Store  KeyValueStore
	Reader *Reader
}

func New(store KeyValueStore, logger *logrus.Logger) *Storage {
	return &Storage{
		Store:  store,
		Reader: NewReader(store, logger),
	}
}

// NewStorage opens the backend selected by env.StorageBackend.
func NewStorage(env *config.Config, logger *logrus.Logger) (*Storage, error) {
	var (
		store KeyValueStore
		err   error
	)
	switch env.StorageBackend {
	case config.BackendMemory:
		store = memory.New()
	case config.BackendPostgres:
		store, err = postgres.New(env.PostgresConnectionString(), logger)
	case config.BackendRedis:
		store, err = redis.New(redis.Config{
			Address:  env.RedisAddress,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		}, logger)
	default:
		err = fmt.Errorf("unknown storage backend %q", env.StorageBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("storage.NewStorage: %w", err)
	}

	logger.WithField("backend", env.StorageBackend).Info("Storage.NewStorage.opened")
	return New(store, logger), nil
}

// Write loads household's ledger for a single read-modify-write. Writers
// must not be used concurrently for the same household.
func (s *Storage) Write(ctx context.Context, household uuid.UUID) (*Writer, error) {
	return newWriter(ctx, s.Store, s.Reader, household)
}

func (s *Storage) Close() error {
	s.Reader.Close()
	return s.Store.Close()
}
