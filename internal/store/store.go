// Package store provides the durable key-value storage used for templates
// and the cart.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Delete for unknown keys.
var ErrNotFound = errors.New("key not found")

// Entry is one stored record.
type Entry struct {
	Key   string
	Value []byte
}

// KV is an ordered key-value store. List returns entries in insertion
// order; overwriting a key keeps its original position.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value and reports whether the key was newly created.
	Put(ctx context.Context, key string, value []byte) (bool, error)
	List(ctx context.Context, prefix string) ([]Entry, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Open returns the SQLite store at path, or an in-memory store when path
// is empty.
func Open(ctx context.Context, path string) (KV, error) {
	if path == "" {
		return NewMemory(), nil
	}
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return db, nil
}
