package pricing

// Money represents a monetary value in whole Naira.
type Money = int64

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Summary aggregates computed checkout components.
type Summary struct {
	Subtotal Money
	Delivery Money
	Total    Money
}

// Compute calculates checkout totals given the cart lines and the selected
// delivery fee.
func Compute(items []Item, delivery Money) Summary {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}
	if delivery < 0 {
		delivery = 0
	}
	return Summary{
		Subtotal: subtotal,
		Delivery: delivery,
		Total:    subtotal + delivery,
	}
}
