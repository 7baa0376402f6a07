package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hookedbylulu/storefront-api/internal/events"
	"github.com/hookedbylulu/storefront-api/internal/sched"
)

func TestNotifyPreemptsCurrentToast(t *testing.T) {
	c := &Center{}

	c.Info("k", "Item removed from cart")
	c.Success("k", "Item added to cart!")

	toast, ok := c.Current("k")
	require.True(t, ok)
	require.Equal(t, "Item added to cart!", toast.Message)
	require.Equal(t, SeveritySuccess, toast.Severity)
}

func TestToastsAreScopedPerKey(t *testing.T) {
	c := &Center{}
	c.Error("a", "Your cart is empty!")
	c.Success("b", "Order sent! We'll contact you soon.")

	toastA, ok := c.Current("a")
	require.True(t, ok)
	require.Equal(t, SeverityError, toastA.Severity)

	toastB, ok := c.Current("b")
	require.True(t, ok)
	require.Equal(t, SeveritySuccess, toastB.Severity)
}

func TestAutoDismissal(t *testing.T) {
	s := sched.New()
	defer s.Stop()
	c := &Center{Sched: s, TTL: 10 * time.Millisecond}

	c.Info("k", "hello")
	require.Eventually(t, func() bool {
		_, ok := c.Current("k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNewToastSupersedesPendingDismissal(t *testing.T) {
	s := sched.New()
	defer s.Stop()
	c := &Center{Sched: s, TTL: 40 * time.Millisecond}

	c.Info("k", "first")
	time.Sleep(25 * time.Millisecond)
	c.Info("k", "second")
	time.Sleep(25 * time.Millisecond)

	// The first toast's dismissal would have fired by now had it not been
	// replaced along with the toast itself.
	toast, ok := c.Current("k")
	require.True(t, ok)
	require.Equal(t, "second", toast.Message)
}

func TestToastNotifierMapsTopics(t *testing.T) {
	c := &Center{}
	n := ToastNotifier{Center: c}

	require.NoError(t, n.Notify(context.Background(), events.Event{Topic: events.TopicOrderPlaced, Key: "cart-1"}))
	toast, ok := c.Current("cart-1")
	require.True(t, ok)
	require.Equal(t, "Order sent! We'll contact you soon.", toast.Message)

	require.NoError(t, n.Notify(context.Background(), events.Event{Topic: events.TopicCartCleared, Key: "cart-1"}))
	toast, _ = c.Current("cart-1")
	require.Equal(t, "Order sent! We'll contact you soon.", toast.Message)
}
