package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

func TestCacheWithoutRedisBypasses(t *testing.T) {
	ctx := context.Background()
	c := New(nil, 0)

	assert.False(t, c.Enabled())
	assert.Equal(t, 5*time.Minute, c.ttl)

	require.NoError(t, c.SetJSON(ctx, AdminStatsKey, map[string]int{"users": 3}, 0))

	var out map[string]int
	found, err := c.GetJSON(ctx, AdminStatsKey, &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)

	ok, err := c.Lock(ctx, RecommendationLockKey+"u1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, c.Delete(ctx, AdminStatsKey))
	c.Unlock(ctx, RecommendationLockKey+"u1")
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	assert.False(t, c.Enabled())
}

func TestCacheJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	require.True(t, c.Enabled())

	var out map[string]int
	found, err := c.GetJSON(ctx, AdminStatsKey, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetJSON(ctx, AdminStatsKey, map[string]int{"users": 3}, 0))
	found, err = c.GetJSON(ctx, AdminStatsKey, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"users": 3}, out)
	assert.Equal(t, time.Minute, mr.TTL(AdminStatsKey))

	mr.FastForward(61 * time.Second)
	found, err = c.GetJSON(ctx, AdminStatsKey, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetJSON(ctx, AdminStatsKey, 1, 10*time.Second))
	assert.Equal(t, 10*time.Second, mr.TTL(AdminStatsKey))
	require.NoError(t, c.Delete(ctx, AdminStatsKey))
	assert.False(t, mr.Exists(AdminStatsKey))
}

func TestCacheLock(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	key := RecommendationLockKey + "u1"

	ok, err := c.Lock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Lock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "held lock is not granted twice")

	c.Unlock(ctx, key)
	ok, err = c.Lock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	ok, err = c.Lock(ctx, key, 0)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock is granted again")
	assert.Equal(t, 30*time.Second, mr.TTL(key))
}

func TestCacheRedisDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.Lock(ctx, RecommendationLockKey+"u1", time.Second)
	assert.Error(t, err)

	var out map[string]int
	found, err := c.GetJSON(ctx, AdminStatsKey, &out)
	assert.Error(t, err)
	assert.False(t, found)
	assert.True(t, c.warnedUnavailable.Load())
}
