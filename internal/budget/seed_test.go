package budget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_SavedSheetWins(t *testing.T) {
	saved := &Sheet{Items: []Item{item("Salvo anteriormente", 777, 1)}}
	encoded, err := saved.Marshal()
	require.NoError(t, err)

	catalog := &Catalog{Entries: []CatalogEntry{
		{Description: "Do catálogo", UnitPrice: decimal.NewFromInt(100)},
	}}

	items := Seed(encoded, catalog, decimal.NewFromInt(5000))
	require.Len(t, items, 1)
	assert.Equal(t, "Salvo anteriormente", items[0].Description)
}

func TestSeed_CatalogBeforeLegacy(t *testing.T) {
	catalog := &Catalog{Entries: []CatalogEntry{
		{Description: "Georreferenciamento", UnitPrice: decimal.NewFromInt(4200)},
		{Description: "ART", UnitPrice: decimal.NewFromInt(120)},
	}}

	items := Seed("", catalog, decimal.NewFromInt(5000))
	require.Len(t, items, 2)
	assert.Equal(t, "Georreferenciamento", items[0].Description)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(4200)))
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))
}

func TestSeed_LegacyListPricesFirstItemFromBasePrice(t *testing.T) {
	items := Seed("", &Catalog{}, decimal.NewFromInt(3500))
	require.Len(t, items, len(legacyServiceItems))
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(3500)))
	for _, it := range items[1:] {
		assert.True(t, it.UnitPrice.IsZero())
	}
}

func TestSeed_GenericFallback(t *testing.T) {
	items := Seed("", &Catalog{}, decimal.Zero)
	require.Len(t, items, 1)
	assert.Equal(t, fallbackDescription, items[0].Description)
	assert.True(t, items[0].UnitPrice.IsZero())
}

func TestSeed_FreeTextNotesFallThrough(t *testing.T) {
	// Notes that are not a saved sheet do not block seeding.
	items := Seed("visita agendada para terça", &Catalog{}, decimal.NewFromInt(100))
	require.Len(t, items, len(legacyServiceItems))
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `items:
  - description: Georreferenciamento
    unit_price: "4200.00"
  - description: Deslocamento
    unit_price: "350.50"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Entries, 2)
	assert.Equal(t, "Georreferenciamento", catalog.Entries[0].Description)
	assert.True(t, catalog.Entries[1].UnitPrice.Equal(decimal.NewFromFloat(350.50)))

	items := catalog.Items()
	require.Len(t, items, 2)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))
}

func TestLoadCatalog_MissingFileIsEmpty(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, catalog.Entries)
}

func TestLoadCatalog_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [unclosed"), 0644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
