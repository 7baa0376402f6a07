package events

import (
	"context"
	"encoding/json"
	"errors"

	redis "github.com/redis/go-redis/v9"
)

// DefaultLogKey is the redis list holding the event log.
const DefaultLogKey = "lulu:events"

// DefaultMaxLen caps the event log length.
const DefaultMaxLen = 1000

// RedisStore appends events to a capped redis list, newest first.
type RedisStore struct {
	Client *redis.Client
	Key    string
	MaxLen int64
}

func (s *RedisStore) key() string {
	if s.Key == "" {
		return DefaultLogKey
	}
	return s.Key
}

func (s *RedisStore) maxLen() int64 {
	if s.MaxLen <= 0 {
		return DefaultMaxLen
	}
	return s.MaxLen
}

// Append records the event at the head of the log and trims the tail.
func (s *RedisStore) Append(ctx context.Context, event Event) error {
	if s == nil || s.Client == nil {
		return errors.New("events: redis client not configured")
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pipe := s.Client.TxPipeline()
	pipe.LPush(ctx, s.key(), raw)
	pipe.LTrim(ctx, s.key(), 0, s.maxLen()-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit of the most recently appended events.
func (s *RedisStore) Recent(ctx context.Context, limit int64) ([]Event, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("events: redis client not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	raws, err := s.Client.LRange(ctx, s.key(), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(raws))
	for _, raw := range raws {
		var event Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}
