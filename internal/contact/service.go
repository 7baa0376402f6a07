// Package contact hands the storefront contact form over to the store's
// WhatsApp number, mirroring how orders are dispatched.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/events"
	"github.com/hookedbylulu/storefront-api/internal/notify"
)

// ErrInvalidMessage wraps any contact form validation failure.
var ErrInvalidMessage = errors.New("invalid contact message")

// Message is the contact form payload. All three fields are required.
type Message struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Body  string `json:"message" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)
}

// Sent is the successful outcome: the deep link the page opens.
type Sent struct {
	WhatsAppURL string `json:"whatsappUrl"`
}

// Service validates contact messages and builds their WhatsApp handoff.
type Service struct {
	Events    *events.Bus
	Toasts    *notify.Center
	StoreName string
	Contact   string
	Log       zerolog.Logger
	Now       func() time.Time

	validate *validator.Validate
}

// NewService constructs a contact service with its validation engine ready.
func NewService(bus *events.Bus, toasts *notify.Center, storeName, contactNumber string, log zerolog.Logger) *Service {
	return &Service{
		Events:    bus,
		Toasts:    toasts,
		StoreName: storeName,
		Contact:   contactNumber,
		Log:       log,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Send validates the message and returns the prefilled WhatsApp link. The
// key scopes toasts and the emitted event to the visitor's session.
func (s *Service) Send(ctx context.Context, key string, m Message) (Sent, error) {
	if s == nil || s.validate == nil {
		return Sent{}, errors.New("contact service not configured")
	}
	m.Normalize()
	if err := s.validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		msg := "Please fill in all fields"
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "email" {
			msg = "Please enter a valid email address"
		}
		if s.Toasts != nil {
			s.Toasts.Error(key, msg)
		}
		return Sent{}, fmt.Errorf("%s: %w", msg, ErrInvalidMessage)
	}

	link := common.WhatsAppLink(s.Contact, BuildMessage(m, s.StoreName, s.now()))
	if s.Events != nil {
		if _, err := s.Events.Emit(ctx, events.TopicContactSent, key, map[string]any{
			"name":  m.Name,
			"email": m.Email,
		}); err != nil {
			s.Log.Warn().Err(err).Msg("contact event not fully delivered")
		}
	}
	s.Log.Info().Str("key", key).Msg("contact message dispatched")
	return Sent{WhatsAppURL: link}, nil
}

// BuildMessage renders the contact form as the WhatsApp text the store
// owner receives.
func BuildMessage(m Message, storeName string, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💜 *Contact Message - %s* 💜\n\n", storeName)
	fmt.Fprintf(&b, "👤 *From:* %s\n", m.Name)
	fmt.Fprintf(&b, "📧 *Email:* %s\n\n", m.Email)
	fmt.Fprintf(&b, "💬 *Message:*\n%s\n\n", m.Body)
	fmt.Fprintf(&b, "📅 *Date:* %s\n", at.Format("02/01/2006"))
	fmt.Fprintf(&b, "🕐 *Time:* %s", at.Format("15:04:05"))
	return b.String()
}
