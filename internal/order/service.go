package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/checkout"
	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/events"
	"github.com/hookedbylulu/storefront-api/internal/lock"
	"github.com/hookedbylulu/storefront-api/internal/notify"
)

// lockKeyPrefix namespaces per-cart placement locks in Redis.
const lockKeyPrefix = "lulu:lock:cart:"

// ErrEmptyCart rejects an order placed against a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries every offending form field. The first message is
// what the page surfaces in the toast; all fields get marked.
type ValidationError struct {
	Fields []checkout.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid checkout form"
	}
	return e.Fields[0].Message
}

// PlaceInput is the request body for placing an order.
type PlaceInput struct {
	CartID   string        `json:"cartId"`
	Form     checkout.Form `json:"form"`
	Delivery string        `json:"delivery"`
}

// Placed is the successful outcome: the frozen summary plus the deep link
// the page opens to hand the order over.
type Placed struct {
	Summary     Summary `json:"order"`
	WhatsAppURL string  `json:"whatsappUrl"`
}

// Service turns a validated cart and checkout form into a dispatched order.
type Service struct {
	Carts     *cart.Service
	Forms     *checkout.Validator
	Fees      checkout.Fees
	Numbers   *NumberGenerator
	Events    *events.Bus
	Toasts    *notify.Center
	Locks     *lock.Locker
	StoreName string
	Contact   string
	Log       zerolog.Logger
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Place validates the form, freezes the order summary, builds the WhatsApp
// deep link and clears the cart. The cart survives untouched on any
// validation or empty-cart failure.
func (s *Service) Place(ctx context.Context, in PlaceInput) (Placed, error) {
	if s == nil || s.Carts == nil || s.Forms == nil || s.Numbers == nil {
		return Placed{}, errors.New("order service not configured")
	}
	if strings.TrimSpace(in.CartID) == "" {
		return Placed{}, fmt.Errorf("%w: cartId is required", cart.ErrInvalidInput)
	}
	sel, err := s.Fees.Select(in.Delivery)
	if err != nil {
		return Placed{}, err
	}
	if errs := s.Forms.Validate(&in.Form); len(errs) > 0 {
		if s.Toasts != nil {
			s.Toasts.Error(in.CartID, errs[0].Message)
		}
		return Placed{}, &ValidationError{Fields: errs}
	}
	if s.Locks != nil {
		var placed Placed
		err := s.Locks.WithLock(ctx, lockKeyPrefix+in.CartID, 10*time.Second, func(ctx context.Context) error {
			var err error
			placed, err = s.dispatch(ctx, in, sel)
			return err
		})
		return placed, err
	}
	return s.dispatch(ctx, in, sel)
}

// dispatch freezes the summary, emits the deep link and clears the cart.
// Callers hold the per-cart lock when one is configured.
func (s *Service) dispatch(ctx context.Context, in PlaceInput, sel checkout.Selection) (Placed, error) {
	c, err := s.Carts.Get(ctx, in.CartID)
	if err != nil {
		return Placed{}, err
	}
	if c.Empty() {
		if s.Toasts != nil {
			s.Toasts.Error(in.CartID, "Your cart is empty!")
		}
		return Placed{}, ErrEmptyCart
	}

	quote := checkout.Quote(c, sel)
	summary := Summary{
		Number:        s.Numbers.Next(),
		Date:          s.now().Format("02/01/2006"),
		Customer:      in.Form,
		Items:         c.Copy(),
		Subtotal:      quote.Subtotal,
		DeliveryLabel: sel.Label,
		DeliveryFee:   sel.Fee,
		Total:         quote.Total,
	}
	link := common.WhatsAppLink(s.Contact, BuildMessage(summary, s.StoreName))

	if s.Events != nil {
		if _, err := s.Events.Emit(ctx, events.TopicOrderPlaced, in.CartID, map[string]any{
			"orderNumber": summary.Number,
			"total":       summary.Total,
		}); err != nil {
			s.Log.Warn().Err(err).Str("order_number", summary.Number).Msg("order event not fully delivered")
		}
	}
	if _, err := s.Carts.Clear(ctx, in.CartID); err != nil {
		return Placed{}, fmt.Errorf("clear cart after dispatch: %w", err)
	}
	s.Log.Info().
		Str("order_number", summary.Number).
		Str("cart_id", in.CartID).
		Int64("total", summary.Total).
		Msg("order dispatched")
	return Placed{Summary: summary, WhatsAppURL: link}, nil
}
