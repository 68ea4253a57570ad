// Package state persists small key-value client state (most importantly the
// auth token) in a local sqlite database.
package state

import "context"

// Repository is a durable key-value store for client-side state.
//
// Contract:
//   - Get returns nil (no error) for a missing key.
//   - Set upserts; SetAll upserts transactionally (all keys or none).
//   - Delete on a missing key is a no-op; DeleteAll is transactional.
//   - Clear wipes all keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, kv map[string][]byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
