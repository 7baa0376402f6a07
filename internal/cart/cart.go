package cart

// Item is one distinct product line in a cart. Items are keyed by title:
// adding a title that is already present increments the existing quantity
// instead of appending a second row.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice"`
	Qty       int    `json:"qty"`
}

// Cart is the ordered collection of line items for one session. Insertion
// order only affects display, never totals.
type Cart struct {
	ID    string `json:"id"`
	Items []Item `json:"items"`
}

// Total returns the sum of unit price times quantity over all items.
func (c Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Qty)
	}
	return total
}

// ItemCount returns the sum of quantities across all items.
func (c Cart) ItemCount() int {
	var count int
	for _, it := range c.Items {
		count += it.Qty
	}
	return count
}

// Find returns the index of the item with the given title, or -1.
func (c Cart) Find(title string) int {
	for i, it := range c.Items {
		if it.Title == title {
			return i
		}
	}
	return -1
}

// Add merges the title into the cart: an existing line gains quantity, a new
// title is appended with qty 1 and the provided identifier.
func (c *Cart) Add(id int64, title string, unitPrice int64) Item {
	if i := c.Find(title); i >= 0 {
		c.Items[i].Qty++
		return c.Items[i]
	}
	item := Item{ID: id, Title: title, UnitPrice: unitPrice, Qty: 1}
	c.Items = append(c.Items, item)
	return item
}

// Remove drops the item with the matching identifier. Removing an unknown
// identifier leaves the cart unchanged.
func (c *Cart) Remove(id int64) bool {
	for i, it := range c.Items {
		if it.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the collection.
func (c *Cart) Clear() {
	c.Items = nil
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Copy returns a deep copy of the item slice, used for immutable order
// snapshots.
func (c Cart) Copy() []Item {
	if len(c.Items) == 0 {
		return nil
	}
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return items
}
