package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-billing/internal/menu"
)

func TestEncode_Format(t *testing.T) {
	data, err := Encode(Catalog{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	data, err = Encode(Catalog{
		"Papas Fritas": EntryFor(menu.NewAppetizer("Papas Fritas", decimal.RequireFromString("3.0"), "grande")),
		"Coca Cola":    EntryFor(menu.NewBeverage("Coca Cola", decimal.RequireFromString("1.5"), "500ml")),
	})
	require.NoError(t, err)

	want := `{
    "Coca Cola": {
        "price": 1.5,
        "type": "Beverage",
        "extra": "500ml"
    },
    "Papas Fritas": {
        "price": 3,
        "type": "Appetizer",
        "extra": "grande"
    }
}
`
	assert.Equal(t, want, string(data))
}

func TestDecode(t *testing.T) {
	c, err := Decode([]byte(`{"Soup": {"price": 4.20, "type": "Appetizer", "extra": null}}`))
	require.NoError(t, err)
	require.Contains(t, c, "Soup")
	assert.Nil(t, c["Soup"].Extra)
	assert.True(t, decimal.RequireFromString("4.2").Equal(c["Soup"].Price))

	for _, doc := range []string{"", "null", "[]", "not json", `{"Soup": `} {
		_, err := Decode([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestDecode_KeepsOffSchemaEntries(t *testing.T) {
	c, err := Decode([]byte(`{"Water": {"price": "abc", "type": 7, "extra": 500}, "Soup": 1}`))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.True(t, c["Water"].Price.IsZero())
	assert.Empty(t, c["Water"].Type)
	assert.Nil(t, c["Water"].Extra)

	data, err := Encode(c)
	require.NoError(t, err)
	want := `{
    "Soup": 1,
    "Water": {
        "price": "abc",
        "type": 7,
        "extra": 500
    }
}
`
	assert.Equal(t, want, string(data))
}
