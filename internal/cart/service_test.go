package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hookedbylulu/storefront-api/internal/cart"
)

type memStore struct {
	snapshots map[string][]cart.Item
	deleted   []string
}

func newMemStore() *memStore {
	return &memStore{snapshots: map[string][]cart.Item{}}
}

func (m *memStore) Load(_ context.Context, cartID string) ([]cart.Item, error) {
	items := m.snapshots[cartID]
	out := make([]cart.Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *memStore) Save(_ context.Context, cartID string, items []cart.Item) error {
	saved := make([]cart.Item, len(items))
	copy(saved, items)
	m.snapshots[cartID] = saved
	return nil
}

func (m *memStore) Delete(_ context.Context, cartID string) error {
	delete(m.snapshots, cartID)
	m.deleted = append(m.deleted, cartID)
	return nil
}

func newService(store cart.Store) *cart.Service {
	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	var calls int64
	return &cart.Service{
		Store: store,
		Now: func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Millisecond)
		},
	}
}

func TestAddSameTitleAccumulatesQuantity(t *testing.T) {
	svc := newService(newMemStore())
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Amigurumi Bear", 5000)
	require.NoError(t, err)
	c, err = svc.AddItem(ctx, c.ID, "Amigurumi Bear", 5000)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	require.Equal(t, 2, c.Items[0].Qty)
	require.Equal(t, 2, c.ItemCount())
}

func TestTotalsMatchSpecScenario(t *testing.T) {
	svc := newService(newMemStore())
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Amigurumi Bear", 5000)
	require.NoError(t, err)
	c, err = svc.AddItem(ctx, c.ID, "Scarf", 3000)
	require.NoError(t, err)
	c, err = svc.AddItem(ctx, c.ID, "Scarf", 3000)
	require.NoError(t, err)

	require.Equal(t, int64(11000), c.Total())
	require.Equal(t, 3, c.ItemCount())
}

func TestEmptyCartTotals(t *testing.T) {
	var c cart.Cart
	require.Equal(t, int64(0), c.Total())
	require.Equal(t, 0, c.ItemCount())
	require.True(t, c.Empty())
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Scarf", 3000)
	require.NoError(t, err)
	before := c.Items

	c, err = svc.RemoveItem(ctx, c.ID, 424242)
	require.NoError(t, err)
	require.Equal(t, before, c.Items)
}

func TestRemoveExistingItem(t *testing.T) {
	svc := newService(newMemStore())
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Scarf", 3000)
	require.NoError(t, err)
	c, err = svc.AddItem(ctx, c.ID, "Beanie", 2500)
	require.NoError(t, err)

	c, err = svc.RemoveItem(ctx, c.ID, c.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, "Beanie", c.Items[0].Title)
}

func TestClearDeletesSnapshot(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Scarf", 3000)
	require.NoError(t, err)

	c, err = svc.Clear(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, c.Empty())
	require.Contains(t, store.deleted, c.ID)
}

func TestEveryMutationPersists(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Scarf", 3000)
	require.NoError(t, err)
	require.Equal(t, c.Items, store.snapshots[c.ID])

	c, err = svc.RemoveItem(ctx, c.ID, c.Items[0].ID)
	require.NoError(t, err)
	require.Empty(t, store.snapshots[c.ID])
}

func TestItemIDsMonotonic(t *testing.T) {
	svc := newService(newMemStore())
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "c1", "Scarf", 3000)
	require.NoError(t, err)
	c, err = svc.AddItem(ctx, c.ID, "Beanie", 2500)
	require.NoError(t, err)
	c, err = svc.AddItem(ctx, c.ID, "Tote", 4000)
	require.NoError(t, err)

	require.Greater(t, c.Items[1].ID, c.Items[0].ID)
	require.Greater(t, c.Items[2].ID, c.Items[1].ID)
}

func TestAddRejectsBlankTitle(t *testing.T) {
	svc := newService(newMemStore())
	_, err := svc.AddItem(context.Background(), "c1", "   ", 1000)
	require.ErrorIs(t, err, cart.ErrInvalidInput)
}

func TestParseDisplayPrice(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"₦5,000", 5000},
		{"₦12,500", 12500},
		{"3000", 3000},
		{" ₦1,000,000 ", 1000000},
	}
	for _, tc := range cases {
		got, err := cart.ParseDisplayPrice(tc.text)
		require.NoError(t, err, tc.text)
		require.Equal(t, tc.want, got, tc.text)
	}

	_, err := cart.ParseDisplayPrice("₦")
	require.ErrorIs(t, err, cart.ErrInvalidInput)
	_, err = cart.ParseDisplayPrice("free")
	require.ErrorIs(t, err, cart.ErrInvalidInput)
}
