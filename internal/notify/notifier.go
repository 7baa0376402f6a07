package notify

import (
	"context"

	"github.com/hookedbylulu/storefront-api/internal/events"
)

// ToastNotifier surfaces bus events as toasts on the emitting session's
// surface.
type ToastNotifier struct {
	Center *Center
}

// Notify implements events.Notifier.
func (n ToastNotifier) Notify(_ context.Context, event events.Event) error {
	if n.Center == nil {
		return nil
	}
	switch event.Topic {
	case events.TopicOrderPlaced:
		n.Center.Success(event.Key, "Order sent! We'll contact you soon.")
	case events.TopicContactSent:
		n.Center.Success(event.Key, "Message sent via WhatsApp!")
	}
	return nil
}
