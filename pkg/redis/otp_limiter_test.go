package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	redispkg "safealert.backend/pkg/redis"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable: %v", err)
	}
	t.Cleanup(srv.Close)

	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{
		Addr: srv.Addr(),
	}))
	return srv
}

func TestOTPLimiter_FirstClaimWins(t *testing.T) {
	setupRedis(t)

	limiter := redispkg.NewOTPLimiter(30 * time.Second)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestOTPLimiter_UsersAreIndependent(t *testing.T) {
	setupRedis(t)

	limiter := redispkg.NewOTPLimiter(30 * time.Second)
	ctx := context.Background()

	allowed, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestOTPLimiter_CooldownExpires(t *testing.T) {
	srv := setupRedis(t)

	limiter := redispkg.NewOTPLimiter(30 * time.Second)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)

	srv.FastForward(31 * time.Second)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)
}
