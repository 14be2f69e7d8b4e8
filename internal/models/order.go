package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-billing/internal/menu"
	"restaurant-billing/internal/order"
	"restaurant-billing/internal/payment"
)

// OrderStatus values returned to clients
const (
	StatusQueued = "queued"
)

// ItemRequest is the wire form of a menu item
type ItemRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Type  string          `json:"type"`
	Extra string          `json:"extra"`
}

// PaymentRequest selects how a checkout is settled
type PaymentRequest struct {
	Method     string           `json:"method"`
	CardNumber string           `json:"card_number,omitempty"`
	CVV        string           `json:"cvv,omitempty"`
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
}

// CheckoutRequest is the body of POST /orders
type CheckoutRequest struct {
	Items              []ItemRequest   `json:"items"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Payment            PaymentRequest  `json:"payment"`
}

// CheckoutResponse is returned once a checkout has been queued
type CheckoutResponse struct {
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

// Item builds the menu item variant named by Type
func (r ItemRequest) Item() (menu.Item, error) {
	return menu.New(menu.Kind(r.Type), r.Name, r.Price, r.Extra)
}

// BuildMethod creates the payment method described by the request
func (r PaymentRequest) BuildMethod() (payment.Method, error) {
	return buildMethod(r.Method, r.CardNumber, r.CVV)
}

func buildMethod(method, cardNumber, cvv string) (payment.Method, error) {
	switch strings.ToLower(method) {
	case payment.MethodCard:
		return payment.NewCard(cardNumber, cvv), nil
	case payment.MethodCash:
		return payment.NewCash(decimal.Zero), nil
	default:
		return nil, fmt.Errorf("unsupported payment method %q", method)
	}
}

// BuildOrder adds every requested item to a new order, in request order
func (r *CheckoutRequest) BuildOrder() (*order.Order, error) {
	return buildOrder(r.Items)
}

func buildOrder(items []ItemRequest) (*order.Order, error) {
	o := order.New()
	for i, itemReq := range items {
		item, err := itemReq.Item()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		o.AddItem(item)
	}
	return o, nil
}

// Quote prices the request the same way the checkout worker will
func (r *CheckoutRequest) Quote() (decimal.Decimal, error) {
	o, err := r.BuildOrder()
	if err != nil {
		return decimal.Zero, err
	}
	method, err := r.Payment.BuildMethod()
	if err != nil {
		return decimal.Zero, err
	}
	return payment.New(o, method, nil).FinalAmount(r.DiscountPercentage), nil
}

// GenerateOrderNumber returns a unique order number in format ORD_YYYYMMDD_XXXXXXXX
func GenerateOrderNumber(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD_%s_%s", date.UTC().Format("20060102"), suffix)
}
