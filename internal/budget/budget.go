// Package budget computes project budget totals from priced line items and
// resolves the seed item list for a new budget sheet.
package budget

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one priced line of a budget sheet.
type Item struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// Sheet is the full budget attached to a project's budget step, stored as
// JSON in the step notes. Adjustment is a signed correction (discount or
// surcharge) applied after the item subtotal.
type Sheet struct {
	Items      []Item          `json:"items"`
	Adjustment decimal.Decimal `json:"adjustment"`
}

// Subtotal is the item's unit price times its quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(it.Quantity)
}

// Subtotal is the sum of unit price times quantity over all items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

// Total applies the adjustment to the item subtotal and clamps at zero:
// the result never goes negative no matter how large a discount is.
func Total(items []Item, adjustment decimal.Decimal) decimal.Decimal {
	total := Subtotal(items).Add(adjustment)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Total is the sheet's clamped total.
func (s *Sheet) Total() decimal.Decimal {
	return Total(s.Items, s.Adjustment)
}

// Validate rejects sheets with negative prices or quantities.
func (s *Sheet) Validate() error {
	for i, it := range s.Items {
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: unit price must not be negative", i)
		}
		if it.Quantity.IsNegative() {
			return fmt.Errorf("item %d: quantity must not be negative", i)
		}
	}
	return nil
}

// Marshal encodes the sheet for storage in step notes.
func (s *Sheet) Marshal() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding budget sheet: %w", err)
	}
	return string(raw), nil
}

// ParseSheet decodes a budget sheet previously saved in step notes.
// Returns ok=false for empty notes, notes that are not JSON, or JSON that
// does not carry a non-empty item list; callers fall back to the seed
// catalog in that case.
func ParseSheet(notes string) (*Sheet, bool) {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var s Sheet
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, false
	}
	if len(s.Items) == 0 {
		return nil, false
	}
	if err := s.Validate(); err != nil {
		return nil, false
	}
	return &s, true
}
