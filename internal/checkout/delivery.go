package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/pricing"
)

// Delivery identifies one of the offered delivery methods. Exactly one is
// active per checkout; the default is standard.
type Delivery string

const (
	DeliveryStandard   Delivery = "standard"
	DeliveryExpress    Delivery = "express"
	DeliveryNationwide Delivery = "nationwide"
)

// ErrUnknownDelivery is returned for a method outside the offered set.
var ErrUnknownDelivery = errors.New("unknown delivery method")

// deliveryLabels are the human-readable descriptions shown on the page and
// in the order message.
var deliveryLabels = map[Delivery]string{
	DeliveryStandard:   "Standard Delivery (5-7 business days)",
	DeliveryExpress:    "Express Delivery (2-3 business days)",
	DeliveryNationwide: "Nationwide Delivery (7-10 business days)",
}

// ParseDelivery resolves the wire value, defaulting to standard when empty.
func ParseDelivery(value string) (Delivery, error) {
	switch Delivery(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return DeliveryStandard, nil
	case DeliveryStandard:
		return DeliveryStandard, nil
	case DeliveryExpress:
		return DeliveryExpress, nil
	case DeliveryNationwide:
		return DeliveryNationwide, nil
	default:
		return "", fmt.Errorf("%q: %w", value, ErrUnknownDelivery)
	}
}

// Label returns the human-readable description for the method.
func (d Delivery) Label() string {
	return deliveryLabels[d]
}

// deliveryNames are the short names used in selection toasts.
var deliveryNames = map[Delivery]string{
	DeliveryStandard:   "Standard Delivery",
	DeliveryExpress:    "Express Delivery",
	DeliveryNationwide: "Nationwide Delivery",
}

// Name returns the short display name for the method.
func (d Delivery) Name() string {
	return deliveryNames[d]
}

// Fees holds the configured flat fee per delivery method.
type Fees struct {
	Standard   int64
	Express    int64
	Nationwide int64
}

// Fee returns the configured fee for the method.
func (f Fees) Fee(d Delivery) int64 {
	switch d {
	case DeliveryExpress:
		return f.Express
	case DeliveryNationwide:
		return f.Nationwide
	default:
		return f.Standard
	}
}

// Selection is the active delivery choice with its resolved fee and label.
type Selection struct {
	Method Delivery `json:"method"`
	Label  string   `json:"label"`
	Fee    int64    `json:"fee"`
}

// Select resolves a wire value into a Selection. Selecting a method replaces
// any previous choice; there is never more than one active selection.
func (f Fees) Select(value string) (Selection, error) {
	method, err := ParseDelivery(value)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Method: method, Label: method.Label(), Fee: f.Fee(method)}, nil
}

// Quote recomputes checkout totals for the cart under the given selection.
func Quote(c cart.Cart, sel Selection) pricing.Summary {
	items := make([]pricing.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, pricing.Item{Qty: it.Qty, UnitPrice: it.UnitPrice})
	}
	return pricing.Compute(items, sel.Fee)
}
