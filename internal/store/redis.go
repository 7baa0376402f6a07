// Package store persists cart snapshots in Redis. The snapshot is a JSON
// list of line item records written under a fixed key prefix; it mirrors the
// in-memory cart verbatim after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hookedbylulu/storefront-api/internal/cart"
)

// DefaultKeyPrefix namespaces cart snapshot keys.
const DefaultKeyPrefix = "lulu:cart:"

// Redis stores cart snapshots as JSON values with an optional TTL.
type Redis struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
	Logger zerolog.Logger
}

func (r *Redis) key(cartID string) string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + cartID
}

// Load reads the snapshot for the cart. A missing key yields an empty item
// list. A corrupt value also yields an empty list: the session recovers with
// a fresh cart, and the corruption is only surfaced in the logs.
func (r *Redis) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("store: redis client not configured")
	}
	raw, err := r.Client.Get(ctx, r.key(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []cart.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		r.Logger.Warn().Str("cart_id", cartID).Err(err).Msg("corrupt cart snapshot discarded")
		return nil, nil
	}
	return items, nil
}

// Save writes the snapshot, replacing any previous value.
func (r *Redis) Save(ctx context.Context, cartID string, items []cart.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("store: redis client not configured")
	}
	if items == nil {
		items = []cart.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.key(cartID), raw, r.TTL).Err()
}

// Delete removes the snapshot entirely.
func (r *Redis) Delete(ctx context.Context, cartID string) error {
	if r == nil || r.Client == nil {
		return errors.New("store: redis client not configured")
	}
	return r.Client.Del(ctx, r.key(cartID)).Err()
}
