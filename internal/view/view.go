// Package view renders a cart into the derived UI projections the storefront
// page displays: the badge count, the sidebar rows and the footer total. The
// projection carries no state of its own and must be re-rendered after every
// cart mutation.
package view

import (
	"strconv"

	"github.com/hookedbylulu/storefront-api/internal/cart"
)

// EmptyMessage is shown in the sidebar when the cart holds no items.
const EmptyMessage = "Your cart is empty"

// Badge is the item-count indicator on the cart icon.
type Badge struct {
	Count  int  `json:"count"`
	Hidden bool `json:"hidden"`
}

// Row is one sidebar line for a cart item.
type Row struct {
	ItemID    int64  `json:"itemId"`
	Title     string `json:"title"`
	Qty       int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
	Display   string `json:"display"`
}

// Footer is the running total beneath the sidebar list.
type Footer struct {
	Total   int64  `json:"total"`
	Display string `json:"display"`
	Hidden  bool   `json:"hidden"`
}

// Model is the full derived projection of a cart.
type Model struct {
	Badge        Badge  `json:"badge"`
	Rows         []Row  `json:"rows"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
	Footer       Footer `json:"footer"`
}

// Render projects the cart into its display model. It is a pure function of
// the cart state.
func Render(c cart.Cart) Model {
	count := c.ItemCount()
	m := Model{
		Badge: Badge{Count: count, Hidden: count == 0},
	}
	if c.Empty() {
		m.EmptyMessage = EmptyMessage
		m.Footer = Footer{Hidden: true}
		return m
	}
	m.Rows = make([]Row, 0, len(c.Items))
	for _, it := range c.Items {
		line := it.UnitPrice * int64(it.Qty)
		m.Rows = append(m.Rows, Row{
			ItemID:    it.ID,
			Title:     it.Title,
			Qty:       it.Qty,
			LineTotal: line,
			Display:   Naira(line),
		})
	}
	total := c.Total()
	m.Footer = Footer{Total: total, Display: Naira(total)}
	return m
}

// Naira formats a whole-Naira amount with the currency symbol and thousands
// separators, e.g. Naira(12500) == "₦12,500".
func Naira(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}
	out := "₦" + string(grouped)
	if negative {
		out = "-" + out
	}
	return out
}
