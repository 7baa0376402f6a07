package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Store persists cart snapshots under a per-cart key. A missing or corrupt
// stored value loads as an empty item list rather than an error.
type Store interface {
	Load(ctx context.Context, cartID string) ([]Item, error)
	Save(ctx context.Context, cartID string, items []Item) error
	Delete(ctx context.Context, cartID string) error
}

// Service encapsulates cart domain operations. Every mutation is written back
// to the store before returning, so the persisted snapshot never lags the
// in-memory state.
type Service struct {
	Store Store
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Ensure resolves the cart for the provided identifier, minting a fresh
// identifier when none is supplied.
func (s *Service) Ensure(ctx context.Context, cartID string) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		cartID = uuid.NewString()
	}
	items, err := s.Store.Load(ctx, cartID)
	if err != nil {
		return Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return Cart{ID: cartID, Items: items}, nil
}

// Get loads the current snapshot for the cart.
func (s *Service) Get(ctx context.Context, cartID string) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	if strings.TrimSpace(cartID) == "" {
		return Cart{}, fmt.Errorf("cart id required: %w", ErrInvalidInput)
	}
	items, err := s.Store.Load(ctx, cartID)
	if err != nil {
		return Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return Cart{ID: cartID, Items: items}, nil
}

// AddItem inserts or increments the line item for the given title.
func (s *Service) AddItem(ctx context.Context, cartID, title string, unitPrice int64) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Cart{}, fmt.Errorf("title required: %w", ErrInvalidInput)
	}
	if unitPrice < 0 {
		return Cart{}, fmt.Errorf("unit price must not be negative: %w", ErrInvalidInput)
	}
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	cart.Add(s.nextID(cart), title, unitPrice)
	if err := s.Store.Save(ctx, cart.ID, cart.Items); err != nil {
		return Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// AddItemFromDisplay parses the product card's price text before delegating
// to AddItem.
func (s *Service) AddItemFromDisplay(ctx context.Context, cartID, title, priceText string) (Cart, error) {
	price, err := ParseDisplayPrice(priceText)
	if err != nil {
		return Cart{}, err
	}
	return s.AddItem(ctx, cartID, title, price)
}

// RemoveItem drops the identified line. Removing an absent identifier is a
// no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, cartID string, itemID int64) (Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	if !cart.Remove(itemID) {
		return cart, nil
	}
	if err := s.Store.Save(ctx, cart.ID, cart.Items); err != nil {
		return Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the cart and deletes its snapshot.
func (s *Service) Clear(ctx context.Context, cartID string) (Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	cart.Clear()
	if err := s.Store.Delete(ctx, cart.ID); err != nil {
		return Cart{}, fmt.Errorf("delete cart: %w", err)
	}
	return cart, nil
}

// nextID derives a creation-time identifier that stays strictly monotonic
// within the cart even when two adds land on the same millisecond.
func (s *Service) nextID(cart Cart) int64 {
	id := s.now().UnixMilli()
	for _, it := range cart.Items {
		if it.ID >= id {
			id = it.ID + 1
		}
	}
	return id
}
