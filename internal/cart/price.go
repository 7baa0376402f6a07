package cart

import (
	"fmt"
	"strconv"
	"strings"
)

// currency markers stripped from display text before parsing. Product cards
// render prices as e.g. "₦5,000".
var displayStrip = strings.NewReplacer("₦", "", "NGN", "", ",", "", " ", "", " ", "")

// ParseDisplayPrice converts product-card display text into a whole-Naira
// integer. The currency symbol and thousands separators are a presentation
// concern of the page, not part of the model contract.
func ParseDisplayPrice(text string) (int64, error) {
	cleaned := strings.TrimSpace(displayStrip.Replace(text))
	if cleaned == "" {
		return 0, fmt.Errorf("empty price text: %w", ErrInvalidInput)
	}
	price, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, ErrInvalidInput)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q: %w", text, ErrInvalidInput)
	}
	return price, nil
}
