package menu

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownKind is returned by New for a type tag outside Beverage, Appetizer and MainCourse.
var ErrUnknownKind = errors.New("unknown menu item type")

// Kind is the type tag of a menu item, as stored in catalogs.
type Kind string

const (
	KindBeverage   Kind = "Beverage"
	KindAppetizer  Kind = "Appetizer"
	KindMainCourse Kind = "MainCourse"
)

// Valid reports whether k is one of the known item kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBeverage, KindAppetizer, KindMainCourse:
		return true
	}
	return false
}

// Item is a single sellable unit. Only *Beverage, *Appetizer and *MainCourse implement it.
type Item interface {
	Name() string
	SetName(name string)
	Price() decimal.Decimal
	SetPrice(price decimal.Decimal)
	// TotalPrice is the unit price; an item has no quantity.
	TotalPrice() decimal.Decimal
	Kind() Kind
	// Extra is the variant attribute: size, portion or cooking level.
	Extra() string

	sealed()
}

type base struct {
	name  string
	price decimal.Decimal
}

func (b *base) Name() string                   { return b.name }
func (b *base) SetName(name string)            { b.name = name }
func (b *base) Price() decimal.Decimal         { return b.price }
func (b *base) SetPrice(price decimal.Decimal) { b.price = price }
func (b *base) TotalPrice() decimal.Decimal    { return b.price }
func (b *base) sealed()                        {}

type Beverage struct {
	base
	size string
}

func NewBeverage(name string, price decimal.Decimal, size string) *Beverage {
	return &Beverage{base: base{name: name, price: price}, size: size}
}

func (b *Beverage) Size() string        { return b.size }
func (b *Beverage) SetSize(size string) { b.size = size }
func (b *Beverage) Kind() Kind          { return KindBeverage }
func (b *Beverage) Extra() string       { return b.size }

type Appetizer struct {
	base
	portion string
}

func NewAppetizer(name string, price decimal.Decimal, portion string) *Appetizer {
	return &Appetizer{base: base{name: name, price: price}, portion: portion}
}

func (a *Appetizer) Portion() string           { return a.portion }
func (a *Appetizer) SetPortion(portion string) { a.portion = portion }
func (a *Appetizer) Kind() Kind                { return KindAppetizer }
func (a *Appetizer) Extra() string             { return a.portion }

type MainCourse struct {
	base
	cookingLevel string
}

func NewMainCourse(name string, price decimal.Decimal, cookingLevel string) *MainCourse {
	return &MainCourse{base: base{name: name, price: price}, cookingLevel: cookingLevel}
}

func (m *MainCourse) CookingLevel() string                { return m.cookingLevel }
func (m *MainCourse) SetCookingLevel(cookingLevel string) { m.cookingLevel = cookingLevel }
func (m *MainCourse) Kind() Kind                          { return KindMainCourse }
func (m *MainCourse) Extra() string                       { return m.cookingLevel }

// New builds the variant named by kind, with extra as its variant attribute.
func New(kind Kind, name string, price decimal.Decimal, extra string) (Item, error) {
	switch kind {
	case KindBeverage:
		return NewBeverage(name, price, extra), nil
	case KindAppetizer:
		return NewAppetizer(name, price, extra), nil
	case KindMainCourse:
		return NewMainCourse(name, price, extra), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
