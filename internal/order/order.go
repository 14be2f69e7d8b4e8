package order

import (
	"github.com/shopspring/decimal"

	"restaurant-billing/internal/menu"
)

// beverageRate is applied to every beverage once the order holds a main course.
var beverageRate = decimal.RequireFromString("0.9")

var hundred = decimal.NewFromInt(100)

// Order is an ordered list of menu items.
type Order struct {
	items         []menu.Item
	hasMainCourse bool
}

func New() *Order {
	return &Order{}
}

// AddItem appends item. Adding a main course marks the order for the beverage
// discount for the rest of its life.
func (o *Order) AddItem(item menu.Item) {
	o.items = append(o.items, item)
	if item.Kind() == menu.KindMainCourse {
		o.hasMainCourse = true
	}
}

// Items returns the items in insertion order.
func (o *Order) Items() []menu.Item {
	items := make([]menu.Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) HasMainCourse() bool {
	return o.hasMainCourse
}

// TotalBill sums the item prices, taking 10% off every beverage when the
// order contains a main course.
func (o *Order) TotalBill() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		price := item.TotalPrice()
		if item.Kind() == menu.KindBeverage && o.hasMainCourse {
			price = price.Mul(beverageRate)
		}
		total = total.Add(price)
	}
	return total
}

// ApplyDiscount scales every item by (1 - percentage/100). The beverage rule
// of TotalBill does not apply here, not even for a zero percentage.
func (o *Order) ApplyDiscount(percentage decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(percentage.Div(hundred))
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.TotalPrice().Mul(factor))
	}
	return total
}
