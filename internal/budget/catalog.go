package budget

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogEntry is a configured default line-item template: a description
// and a unit price. Entries seed new budget sheets at quantity 1.
type CatalogEntry struct {
	Description string          `yaml:"description"`
	UnitPrice   decimal.Decimal `yaml:"unit_price"`
}

// Catalog is the configured set of default line-item templates.
type Catalog struct {
	Entries []CatalogEntry `yaml:"items"`
}

// LoadCatalog reads a YAML item catalog from disk. A missing file is not an
// error: seeding falls through to the next source.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("reading item catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing item catalog: %w", err)
	}
	return &c, nil
}

// Items expands the catalog into seed items, each at quantity 1.
func (c *Catalog) Items() []Item {
	items := make([]Item, 0, len(c.Entries))
	for _, e := range c.Entries {
		items = append(items, Item{
			Description: e.Description,
			UnitPrice:   e.UnitPrice,
			Quantity:    decimal.NewFromInt(1),
		})
	}
	return items
}
