package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/pkg/config"
)

func newTestLimiter(t *testing.T, maxAttempts, windowSeconds int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, config.RateLimitConfig{
		MaxAttempts:   maxAttempts,
		WindowSeconds: windowSeconds,
	}), mr
}

func TestEnforce_BloqueaTrasElCupo(t *testing.T) {
	l, _ := newTestLimiter(t, 3, 60)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Enforce(ctx, "10.0.0.1"))
	}
	assert.ErrorIs(t, l.Enforce(ctx, "10.0.0.1"), ErrRateLimited)

	// Otra IP tiene su propio contador.
	assert.NoError(t, l.Enforce(ctx, "10.0.0.2"))
}

func TestEnforce_LaVentanaExpira(t *testing.T) {
	l, mr := newTestLimiter(t, 1, 60)
	ctx := context.Background()

	require.NoError(t, l.Enforce(ctx, "10.0.0.1"))
	require.ErrorIs(t, l.Enforce(ctx, "10.0.0.1"), ErrRateLimited)

	mr.FastForward(61 * time.Second)
	assert.NoError(t, l.Enforce(ctx, "10.0.0.1"))
}

func TestReset_LimpiaElContador(t *testing.T) {
	l, _ := newTestLimiter(t, 1, 60)
	ctx := context.Background()

	require.NoError(t, l.Enforce(ctx, "10.0.0.1"))
	require.ErrorIs(t, l.Enforce(ctx, "10.0.0.1"), ErrRateLimited)

	require.NoError(t, l.Reset(ctx, "10.0.0.1"))
	assert.NoError(t, l.Enforce(ctx, "10.0.0.1"))
}

func TestEnforce_SinIPNoCuenta(t *testing.T) {
	l, _ := newTestLimiter(t, 1, 60)
	assert.NoError(t, l.Enforce(context.Background(), ""))
	assert.NoError(t, l.Enforce(context.Background(), ""))
}

func TestEnforce_RedisCaidoReportaUnavailable(t *testing.T) {
	l, mr := newTestLimiter(t, 1, 60)
	mr.Close()

	err := l.Enforce(context.Background(), "10.0.0.1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
