package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// UpdateFunc receives the current value (nil when the key is missing) and
// returns the value to store.
type UpdateFunc func(current []byte) ([]byte, error)

// KV is the key-value store backing the marketplace. Each key holds one JSON
// document.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Update applies fn atomically with respect to other writers of key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
}
