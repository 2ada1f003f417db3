// Package redis keeps documents as plain string keys and publishes every
// write on a per-path channel for Subscribe.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/household-server/internal/storage/kv"
)

const channelPrefix = "kv:"

type Config struct {
	Address  string
	Password string
	DB       int
}

type Store struct {
	client *goredis.Client
	logger *logrus.Logger
}

var _ kv.Store = (*Store)(nil)

// New connects and pings the server.
func New(cfg Config, logger *logrus.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return &Store{client: client, logger: logger}, nil
}

// Channel is the pub/sub channel writes to path are announced on.
func Channel(path string) string {
	return channelPrefix + path
}

func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	value, err := s.client.Get(ctx, path).Bytes()
	if errors.Is(err, goredis.Nil) {
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

// SetMany writes every entry and publishes each change in one MULTI/EXEC
// block, so subscribers only hear about values that are all in place.
func (s *Store) SetMany(ctx context.Context, entries []kv.Entry) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, e.Path, e.Value, 0)
		}
		for _, e := range entries {
			pipe.Publish(ctx, Channel(e.Path), e.Value)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %d entries: %w", len(entries), err)
	}
	return nil
}

func (s *Store) Subscribe(ctx context.Context, path string, onChange func([]byte)) (func(), error) {
	pubsub := s.client.Subscribe(context.Background(), Channel(path))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", path, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			onChange([]byte(msg.Payload))
		}
		s.logger.WithField("path", path).Debug("RedisStore.Subscribe.closed")
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				s.logger.WithError(err).WithField("path", path).Warn("RedisStore.Subscribe.close")
			}
		})
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
