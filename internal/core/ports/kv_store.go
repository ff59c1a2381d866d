package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get for keys that hold no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is durable key-value storage for serialized board slots.
type KVStore interface {
	// Get returns ErrKeyNotFound when the key was never written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the whole value stored under key in a single write.
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
