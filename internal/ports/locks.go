package ports

import (
	"context"
	"time"
)

// SyncLock is the single-flight guard around a sync pass. The DB uniqueness
// constraint on commissions remains the last line of defense; the lock exists
// so concurrent passes don't both do redundant upstream work.
type SyncLock interface {
	// Acquire returns false when another pass already holds the lock. The TTL
	// bounds how long a crashed pass can keep the lock.
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}
