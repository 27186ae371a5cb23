package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys of requests that were already processed.
type IdempotencyStore interface {
	// MarkProcessed records key with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if key has already been recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets key so that a failed request can be retried.
	Release(ctx context.Context, key string) error

	Close() error
}
