// Package db defines the key-value storage contract backing the shared lexicon.
package db

import (
	"context"
	"time"
)

// Store is the storage facade used by the lexicon backend and the seeding command.
type Store interface {
	Pinger
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash field operations.
type HashStore interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HLen(ctx context.Context, key string) (int64, error)
}
