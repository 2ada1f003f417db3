// Package memory is an in-process kv.Store used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/carson-networks/household-server/internal/storage/kv"
)

type Store struct {
	mu     sync.Mutex
	values map[string][]byte
	subs   map[string]map[int]func([]byte)
	nextID int
}

var _ kv.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		values: make(map[string][]byte),
		subs:   make(map[string]map[int]func([]byte)),
	}
}

func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[path]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", path, kv.ErrNotFound)
	}
	return clone(value), nil
}

func (s *Store) Set(ctx context.Context, path string, value []byte) error {
	return s.SetMany(ctx, []kv.Entry{{Path: path, Value: value}})
}

// SetMany stores every entry under one lock and then runs the subscribers
// of the written paths outside it.
func (s *Store) SetMany(ctx context.Context, entries []kv.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	type notification struct {
		cb    func([]byte)
		value []byte
	}
	var pending []notification

	s.mu.Lock()
	for _, e := range entries {
		s.values[e.Path] = clone(e.Value)
		for _, cb := range s.subs[e.Path] {
			pending = append(pending, notification{cb: cb, value: e.Value})
		}
	}
	s.mu.Unlock()

	for _, n := range pending {
		n.cb(clone(n.value))
	}
	return nil
}

func (s *Store) Subscribe(ctx context.Context, path string, onChange func([]byte)) (func(), error) {
	if err := ctx.Err(); err != nil {
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

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = make(map[string]map[int]func([]byte))
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
