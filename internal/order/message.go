package order

import (
	"fmt"
	"strings"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/checkout"
	"github.com/hookedbylulu/storefront-api/internal/view"
)

// Summary is the immutable snapshot of an order at the moment it was placed.
// It is what the WhatsApp message and the confirmation response are built
// from; later cart mutations never touch it.
type Summary struct {
	Number        string        `json:"orderNumber"`
	Date          string        `json:"orderDate"`
	Customer      checkout.Form `json:"customer"`
	Items         []cart.Item   `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	DeliveryLabel string        `json:"deliveryType"`
	DeliveryFee   int64         `json:"deliveryFee"`
	Total         int64         `json:"total"`
}

// BuildMessage renders the order as the WhatsApp text the store owner
// receives: order block, customer block, itemised list with line totals,
// totals block, then special instructions when the customer left notes.
func BuildMessage(s Summary, storeName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧶 *NEW ORDER - %s* 🧶\n\n", storeName)

	b.WriteString("📋 *Order Details*\n")
	fmt.Fprintf(&b, "Order Number: %s\n", s.Number)
	fmt.Fprintf(&b, "Date: %s\n\n", s.Date)

	b.WriteString("👤 *Customer Information*\n")
	fmt.Fprintf(&b, "Name: %s\n", s.Customer.FullName())
	fmt.Fprintf(&b, "Email: %s\n", s.Customer.Email)
	fmt.Fprintf(&b, "Phone: %s\n", s.Customer.Phone)
	fmt.Fprintf(&b, "Address: %s\n", s.Customer.Address)
	fmt.Fprintf(&b, "City: %s\n", s.Customer.City)
	fmt.Fprintf(&b, "State: %s\n\n", s.Customer.State)

	b.WriteString("🛍️ *Items Ordered*\n")
	for i, it := range s.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Title)
		fmt.Fprintf(&b, "   Quantity: %d\n", it.Qty)
		fmt.Fprintf(&b, "   Price: %s\n\n", view.Naira(it.UnitPrice*int64(it.Qty)))
	}

	b.WriteString("💰 *Order Summary*\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", view.Naira(s.Subtotal))
	fmt.Fprintf(&b, "Delivery: %s\n", s.DeliveryLabel)
	fmt.Fprintf(&b, "Delivery Fee: %s\n", view.Naira(s.DeliveryFee))
	fmt.Fprintf(&b, "*Total: %s*\n\n", view.Naira(s.Total))

	if s.Customer.Notes != "" {
		b.WriteString("📝 *Special Instructions*\n")
		fmt.Fprintf(&b, "%s\n\n", s.Customer.Notes)
	}

	fmt.Fprintf(&b, "Thank you for choosing %s! 💜\n", storeName)
	b.WriteString("We'll confirm your order and provide payment details shortly.")

	return b.String()
}
