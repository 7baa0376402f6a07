// Package ratelimit guards the order and contact handoff routes with a
// Redis-backed sliding window, keyed by client IP.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hookedbylulu/storefront-api/internal/common"
)

// DefaultKeyPrefix namespaces limiter entries in the shared Redis.
const DefaultKeyPrefix = "lulu:ratelimit:"

// Limiter implements a sliding window over a Redis sorted set. One set per
// key; members are scored by event time and trimmed to the window on every
// check.
type Limiter struct {
	Client *redis.Client
	Prefix string
}

func (l Limiter) prefix() string {
	if l.Prefix == "" {
		return DefaultKeyPrefix
	}
	return l.Prefix
}

// Allow registers an event for the key and reports whether it stays within
// max events per window. A nil client or non-positive limit disables the
// limiter rather than blocking traffic.
func (l Limiter) Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, reset time.Time, err error) {
	if l.Client == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}

	now := time.Now()
	until := now.Add(window)
	cutoff := float64(now.Add(-window).UnixNano())

	redisKey := l.prefix() + key
	member := fmt.Sprintf("%s:%s", key, uuid.NewString())

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", fmt.Sprintf("%f", cutoff))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err = pipe.Exec(ctx); err != nil {
		return false, 0, until, err
	}

	current := int(countCmd.Val())
	remaining = max - current
	if remaining < 0 {
		remaining = 0
	}
	return current <= max, remaining, until, nil
}

// Middleware wraps a route with the limiter. Requests are keyed by client
// IP under the route's scope; a limiter failure lets the request through
// but is logged, since blocking checkout on a Redis blip is worse than
// briefly losing the limit.
type Middleware struct {
	Limiter Limiter
	Scope   string
	Window  time.Duration
	Max     int
	Log     zerolog.Logger
}

// Wrap enforces the limit before delegating to next.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := m.Scope + ":" + common.ClientIP(r)
		allowed, remaining, resetAt, err := m.Limiter.Allow(r.Context(), key, m.Window, m.Max)
		if err != nil {
			m.Log.Warn().Err(err).Str("scope", m.Scope).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		limit := m.Max
		if limit < 0 {
			limit = 0
		}
		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.Itoa(retryAfter))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again shortly.", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
