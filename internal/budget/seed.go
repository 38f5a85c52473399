package budget

import (
	"github.com/shopspring/decimal"
)

// legacyServiceItems mirrors the old per-service seed lists kept for
// projects created before the configurable catalog existed.
var legacyServiceItems = []string{
	"Serviço técnico principal",
	"Deslocamento",
	"Taxas e emolumentos",
}

// fallbackDescription seeds the single generic item used when every other
// source is empty.
const fallbackDescription = "Serviço de regularização fundiária"

// Seed resolves the starting item list for a new budget sheet, in priority
// order: a well-formed sheet previously saved in the budget step's notes;
// the configured catalog of default line-item templates at quantity 1; the
// legacy per-service list with the first item priced from the service base
// price; finally a single generic item.
func Seed(savedNotes string, catalog *Catalog, serviceBasePrice decimal.Decimal) []Item {
	if sheet, ok := ParseSheet(savedNotes); ok {
		return sheet.Items
	}

	if catalog != nil && len(catalog.Entries) > 0 {
		return catalog.Items()
	}

	if !serviceBasePrice.IsZero() {
		items := make([]Item, 0, len(legacyServiceItems))
		for i, desc := range legacyServiceItems {
			price := decimal.Zero
			if i == 0 {
				price = serviceBasePrice
			}
			items = append(items, Item{
				Description: desc,
				UnitPrice:   price,
				Quantity:    decimal.NewFromInt(1),
			})
		}
		return items
	}

	return []Item{{
		Description: fallbackDescription,
		UnitPrice:   decimal.Zero,
		Quantity:    decimal.NewFromInt(1),
	}}
}
