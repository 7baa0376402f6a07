package events_test

import (
	"context"
	"encoding/json"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/hookedbylulu/storefront-api/internal/events"
)

type captureStore struct {
	appended []events.Event
}

func (c *captureStore) Append(_ context.Context, event events.Event) error {
	c.appended = append(c.appended, event)
	return nil
}

type captureNotifier struct {
	events []events.Event
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return nil
}

func TestEmitPersistsAndFansOut(t *testing.T) {
	store := &captureStore{}
	notifier := &captureNotifier{}
	bus := events.Bus{Store: store, Notifiers: []events.Notifier{notifier}}

	payload := map[string]any{"orderNumber": "HBL250314007"}
	event, err := bus.Emit(context.Background(), events.TopicOrderPlaced, "cart-1", payload)
	require.NoError(t, err)
	require.Len(t, store.appended, 1)
	require.Len(t, notifier.events, 1)
	require.Equal(t, event.ID, notifier.events[0].ID)
	require.JSONEq(t, `{"orderNumber":"HBL250314007"}`, string(store.appended[0].Payload))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	require.Equal(t, "HBL250314007", decoded["orderNumber"])
}

func TestEmitRequiresTopicAndKey(t *testing.T) {
	bus := events.Bus{Store: &captureStore{}}

	_, err := bus.Emit(context.Background(), " ", "cart-1", nil)
	require.Error(t, err)
	_, err = bus.Emit(context.Background(), events.TopicOrderPlaced, "", nil)
	require.Error(t, err)
}

func TestEmitRejectsInvalidRawPayload(t *testing.T) {
	bus := events.Bus{Store: &captureStore{}}
	_, err := bus.Emit(context.Background(), events.TopicOrderPlaced, "cart-1", json.RawMessage("{nope"))
	require.Error(t, err)
}

func TestRedisStoreAppendAndRecent(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	store := &events.RedisStore{Client: client, MaxLen: 2}
	bus := events.Bus{Store: store}

	ctx := context.Background()
	for _, topic := range []string{events.TopicOrderPlaced, events.TopicContactSent, events.TopicCartCleared} {
		_, err := bus.Emit(ctx, topic, "cart-1", nil)
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, events.TopicCartCleared, recent[0].Topic)
	require.Equal(t, events.TopicContactSent, recent[1].Topic)
}
