package menu

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPriceEqualsPrice(t *testing.T) {
	items := []Item{
		NewBeverage("Cola", decimal.RequireFromString("1.5"), "500ml"),
		NewAppetizer("Fries", decimal.RequireFromString("3.0"), "large"),
		NewMainCourse("Steak", decimal.RequireFromString("18.25"), "medium"),
		NewMainCourse("Free sample", decimal.Zero, ""),
	}

	for _, item := range items {
		assert.True(t, item.TotalPrice().Equal(item.Price()), item.Name())
	}
}

func TestVariantAttributes(t *testing.T) {
	tests := []struct {
		item  Item
		kind  Kind
		extra string
	}{
		{NewBeverage("Cola", decimal.NewFromInt(1), "500ml"), KindBeverage, "500ml"},
		{NewAppetizer("Fries", decimal.NewFromInt(3), "large"), KindAppetizer, "large"},
		{NewMainCourse("Steak", decimal.NewFromInt(18), "rare"), KindMainCourse, "rare"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.item.Kind())
			assert.Equal(t, tt.extra, tt.item.Extra())
		})
	}
}

func TestMutators(t *testing.T) {
	b := NewBeverage("Cola", decimal.NewFromInt(1), "330ml")
	b.SetName("Cola Zero")
	b.SetPrice(decimal.RequireFromString("1.75"))
	b.SetSize("500ml")

	assert.Equal(t, "Cola Zero", b.Name())
	assert.True(t, decimal.RequireFromString("1.75").Equal(b.TotalPrice()))
	assert.Equal(t, "500ml", b.Size())
	assert.Equal(t, "500ml", b.Extra())

	a := NewAppetizer("Fries", decimal.NewFromInt(3), "small")
	a.SetPortion("large")
	assert.Equal(t, "large", a.Portion())

	m := NewMainCourse("Steak", decimal.NewFromInt(18), "rare")
	m.SetCookingLevel("well done")
	assert.Equal(t, "well done", m.CookingLevel())
	assert.Equal(t, "well done", m.Extra())
}

func TestNew(t *testing.T) {
	item, err := New(KindMainCourse, "Lasagna", decimal.NewFromInt(12), "hot")
	require.NoError(t, err)
	_, ok := item.(*MainCourse)
	assert.True(t, ok)
	assert.Equal(t, "hot", item.Extra())

	_, err = New("Dessert", "Flan", decimal.NewFromInt(4), "")
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.False(t, Kind("Dessert").Valid())
	assert.True(t, KindAppetizer.Valid())
}
