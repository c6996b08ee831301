//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/redis"
)

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	client, err := redis.Open(context.Background(), url)
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	type snapshot struct {
		Codes []string `json:"codes"`
	}

	t.Run("round trip and delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewRedis[snapshot](newTestRedisClient(t), nil, cache.WithPrefix("test-"+uuid.NewString()))

		_, err := c.Get(ctx, "catalog:locale")
		require.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "catalog:locale", snapshot{Codes: []string{"en", "ar"}}, time.Minute))
		got, err := c.Get(ctx, "catalog:locale")
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "ar"}, got.Codes)

		require.NoError(t, c.Delete(ctx, "catalog:locale"))
		_, err = c.Get(ctx, "catalog:locale")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("clear removes only prefixed keys", func(t *testing.T) {
		t.Parallel()
		client := newTestRedisClient(t)
		a := cache.NewRedis[int](client, nil, cache.WithPrefix("test-"+uuid.NewString()))
		b := cache.NewRedis[int](client, nil, cache.WithPrefix("test-"+uuid.NewString()))
		t.Cleanup(func() { _ = b.Clear(ctx) })

		require.NoError(t, a.Set(ctx, "k", 1, time.Minute))
		require.NoError(t, b.Set(ctx, "k", 2, time.Minute))
		require.NoError(t, a.Clear(ctx))

		_, err := a.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
		v, err := b.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("ttl expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewRedis[string](newTestRedisClient(t), nil, cache.WithPrefix("test-"+uuid.NewString()))
		require.NoError(t, c.Set(ctx, "k", "v", 50*time.Millisecond))
		time.Sleep(150 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}
