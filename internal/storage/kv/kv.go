// Package kv defines the path-addressed document store the ledger is kept in.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Entry is one path and its new value in a SetMany call.
type Entry struct {
	Path  string
	Value []byte
}

// Store is a path-addressed blob store with change notification.
//
// SetMany writes every entry or none of them. Subscribers are notified only
// after all entries are visible.
//
// Subscribe registers onChange for writes to path and returns a function
// that cancels the registration. ctx bounds only the registration itself.
// onChange receives the new value and may be invoked from any goroutine.
type Store interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Set(ctx context.Context, path string, value []byte) error
	SetMany(ctx context.Context, entries []Entry) error
	Subscribe(ctx context.Context, path string, onChange func([]byte)) (func(), error)
	Close() error
}
