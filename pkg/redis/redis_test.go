package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/redis"
)

func TestOpen_InvalidURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := redis.Open(ctx, "")
	require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Open(ctx, "http://localhost:6379")
	require.ErrorIs(t, err, redis.ErrFailedToParseURL)

	_, err = redis.Open(ctx, "redis://localhost:notaport")
	require.ErrorIs(t, err, redis.ErrFailedToParseURL)
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := redis.Connect(ctx, redis.Config{URL: "redis://127.0.0.1:1/0", RetryAttempts: 2})
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, redis.Healthcheck(nil)(context.Background()), redis.ErrHealthcheckFailed)
}
