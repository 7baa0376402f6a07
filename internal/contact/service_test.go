package contact

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hookedbylulu/storefront-api/internal/events"
	"github.com/hookedbylulu/storefront-api/internal/notify"
)

type memEvents struct {
	appended []events.Event
}

func (m *memEvents) Append(_ context.Context, event events.Event) error {
	m.appended = append(m.appended, event)
	return nil
}

func newService(t *testing.T) (*Service, *memEvents, *notify.Center) {
	t.Helper()
	sink := &memEvents{}
	toasts := &notify.Center{}
	svc := NewService(
		&events.Bus{Store: sink, Notifiers: []events.Notifier{notify.ToastNotifier{Center: toasts}}},
		toasts,
		"Hooked by Lulu",
		"2347056599602",
		zerolog.Nop(),
	)
	svc.Now = func() time.Time { return time.Date(2026, 3, 14, 15, 30, 45, 0, time.UTC) }
	return svc, sink, toasts
}

func TestSendBuildsDeepLink(t *testing.T) {
	svc, sink, toasts := newService(t)

	sent, err := svc.Send(context.Background(), "session-1", Message{
		Name:  "Jane",
		Email: "jane@example.com",
		Body:  "Do you take custom orders?",
	})
	require.NoError(t, err)

	u, err := url.Parse(sent.WhatsAppURL)
	require.NoError(t, err)
	require.Equal(t, "wa.me", u.Host)
	require.Equal(t, "/2347056599602", u.Path)

	body := u.Query().Get("text")
	require.Contains(t, body, "*Contact Message - Hooked by Lulu*")
	require.Contains(t, body, "*From:* Jane")
	require.Contains(t, body, "*Email:* jane@example.com")
	require.Contains(t, body, "Do you take custom orders?")
	require.Contains(t, body, "*Date:* 14/03/2026")
	require.Contains(t, body, "*Time:* 15:30:45")

	require.Len(t, sink.appended, 1)
	require.Equal(t, events.TopicContactSent, sink.appended[0].Topic)

	toast, ok := toasts.Current("session-1")
	require.True(t, ok)
	require.Equal(t, "Message sent via WhatsApp!", toast.Message)
	require.Equal(t, notify.SeveritySuccess, toast.Severity)
}

func TestSendRequiresAllFields(t *testing.T) {
	svc, sink, toasts := newService(t)

	_, err := svc.Send(context.Background(), "session-1", Message{Name: "  ", Email: "", Body: ""})
	require.ErrorIs(t, err, ErrInvalidMessage)
	require.Contains(t, err.Error(), "Please fill in all fields")
	require.Empty(t, sink.appended)

	toast, ok := toasts.Current("session-1")
	require.True(t, ok)
	require.Equal(t, notify.SeverityError, toast.Severity)
	require.Equal(t, "Please fill in all fields", toast.Message)
}

func TestSendRejectsBadEmail(t *testing.T) {
	svc, _, toasts := newService(t)

	_, err := svc.Send(context.Background(), "session-1", Message{
		Name:  "Jane",
		Email: "not-an-email",
		Body:  "Hello",
	})
	require.ErrorIs(t, err, ErrInvalidMessage)

	toast, _ := toasts.Current("session-1")
	require.Equal(t, "Please enter a valid email address", toast.Message)
}
