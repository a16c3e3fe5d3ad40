// Package cache is a JSON cache and lock helper over Redis. A nil client
// turns every call into a bypass so the API keeps working without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ehimebase/babybase/internal/pkg/logger"
)

// Key prefixes
const (
	AdminStatsKey         = "admin:stats"
	RecommendationLockKey = "recommendations:lock:"
)

// Cache wraps a Redis client
type Cache struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// New returns a cache using ttl as the default expiry. client may be nil.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// Enabled reports whether a Redis client is attached
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) warnOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		logger.Warn().Err(err).Msg("Redis unavailable, bypassing cache")
	}
}

// GetJSON loads key into out and reports whether it was found
func (c *Cache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		c.warnOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A zero ttl uses the default.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}

// Delete removes key
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.warnOnce(err)
		return err
	}
	return nil
}

// Lock acquires key with SETNX. Without Redis the lock is always granted.
func (c *Cache) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := c.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		c.warnOnce(err)
		return false, err
	}
	return ok, nil
}

// Unlock releases a lock taken with Lock
func (c *Cache) Unlock(ctx context.Context, key string) {
	if err := c.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to release lock")
	}
}
