package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const syncLockKey = "sync:orders:lock"

// RedisSyncLock is the single-flight guard for sync passes, one lock per
// deployment. SETNX with a TTL means a crashed pass frees the lock on its own.
type RedisSyncLock struct {
	client *redis.Client
}

func NewRedisSyncLock(client *redis.Client) *RedisSyncLock {
	return &RedisSyncLock{client: client}
}

func (l *RedisSyncLock) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return l.client.SetNX(ctx, syncLockKey, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (l *RedisSyncLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, syncLockKey).Err()
}
