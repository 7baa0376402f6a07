package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T) (Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return Limiter{Client: client}, mr
}

func TestAllowWithinLimit(t *testing.T) {
	limiter, _ := newLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, _, err := limiter.Allow(ctx, "checkout:10.0.0.1", time.Minute, 3)
		require.NoError(t, err)
		require.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "checkout:10.0.0.1", time.Minute, 3)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Zero(t, remaining)
}

func TestAllowKeysAreIndependent(t *testing.T) {
	limiter, _ := newLimiter(t)
	ctx := context.Background()

	allowed, _, _, err := limiter.Allow(ctx, "checkout:10.0.0.1", time.Minute, 1)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, _, err = limiter.Allow(ctx, "checkout:10.0.0.2", time.Minute, 1)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestAllowDisabledWithoutClient(t *testing.T) {
	allowed, _, _, err := Limiter{}.Allow(context.Background(), "any", time.Minute, 5)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMiddlewareEnforcesLimit(t *testing.T) {
	limiter, _ := newLimiter(t)

	wrapped := Middleware{
		Limiter: limiter,
		Scope:   "checkout",
		Window:  time.Minute,
		Max:     1,
		Log:     zerolog.Nop(),
	}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req.RemoteAddr = "10.0.0.1:51000"

	rr1 := httptest.NewRecorder()
	wrapped.ServeHTTP(rr1, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, rr1.Code)

	rr2 := httptest.NewRecorder()
	wrapped.ServeHTTP(rr2, req.Clone(req.Context()))
	require.Equal(t, http.StatusTooManyRequests, rr2.Code)
	require.Equal(t, "1", rr2.Header().Get("X-RateLimit-Limit"))
	require.NotEmpty(t, rr2.Header().Get("Retry-After"))
	require.Contains(t, rr2.Body.String(), "RATE_LIMITED")
}

func TestMiddlewareFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer func() { _ = client.Close() }()

	wrapped := Middleware{
		Limiter: Limiter{Client: client},
		Scope:   "contact",
		Window:  time.Minute,
		Max:     1,
		Log:     zerolog.Nop(),
	}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
