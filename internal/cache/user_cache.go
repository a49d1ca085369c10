// Package cache provides a Redis-backed read cache for the internal user
// lookup, the hottest endpoint of the service (every payment hits it). The
// cache is nil-safe: when no Redis is configured every operation is a no-op
// and callers fall through to the database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache stores serialized lookup responses keyed by external user id.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserCache wraps the given client. A nil client disables the cache.
func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &UserCache{rdb: rdb, ttl: ttl}
}

func key(userID string) string { return "user:lookup:" + userID }

// Get unmarshals a cached lookup response into dst. It reports false on
// miss, on a disabled cache, and on any Redis error; lookups must never fail
// because the cache did.
func (c *UserCache) Get(ctx context.Context, userID string, dst any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	bs, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(bs, dst) == nil
}

// Set stores a lookup response. Errors are ignored for the same reason.
func (c *UserCache) Set(ctx context.Context, userID string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.SetEx(ctx, key(userID), bs, c.ttl).Err()
}

// Invalidate drops the cached entry after a profile update or deletion.
func (c *UserCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(userID)).Err()
}
