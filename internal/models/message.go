package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-billing/internal/order"
	"restaurant-billing/internal/payment"
)

// CheckoutMessage is sent to checkout workers. It never carries the full
// card number or the CVV.
type CheckoutMessage struct {
	OrderNumber        string          `json:"order_number"`
	CreatedAt          time.Time       `json:"created_at"`
	Items              []ItemRequest   `json:"items"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Payment            PaymentMessage  `json:"payment"`
}

// PaymentMessage is the part of a payment request a checkout worker needs
type PaymentMessage struct {
	Method       string           `json:"method"`
	CardLastFour string           `json:"card_last_four,omitempty"`
	AmountPaid   *decimal.Decimal `json:"amount_paid,omitempty"`
}

// SettlementMessage is broadcast once a checkout has been settled
type SettlementMessage struct {
	OrderNumber string          `json:"order_number"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Message     string          `json:"message"`
	SettledBy   string          `json:"settled_by"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewCheckoutMessage wraps a validated request for the checkout queue
func NewCheckoutMessage(req *CheckoutRequest, orderNumber string) *CheckoutMessage {
	return &CheckoutMessage{
		OrderNumber:        orderNumber,
		CreatedAt:          time.Now().UTC(),
		Items:              req.Items,
		DiscountPercentage: req.DiscountPercentage,
		Payment: PaymentMessage{
			Method:       req.Payment.Method,
			CardLastFour: lastFour(req.Payment.CardNumber),
			AmountPaid:   req.Payment.AmountPaid,
		},
	}
}

// Validate checks a checkout message before it is settled
func (m *CheckoutMessage) Validate() error {
	if err := validateItems(m.Items); err != nil {
		return err
	}
	if err := validateDiscount(m.DiscountPercentage); err != nil {
		return err
	}
	return validatePaymentMessage(m.Payment)
}

// BuildOrder adds every item of the message to a new order, in message order
func (m *CheckoutMessage) BuildOrder() (*order.Order, error) {
	return buildOrder(m.Items)
}

// BuildMethod creates the payment method the message settles with. Cards
// only know their last four digits.
func (p PaymentMessage) BuildMethod() (payment.Method, error) {
	return buildMethod(p.Method, p.CardLastFour, "")
}

func lastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

// NewSettlementMessage builds the notification for a settlement
func NewSettlementMessage(orderNumber, settledBy string, s payment.Settlement) *SettlementMessage {
	return &SettlementMessage{
		OrderNumber: orderNumber,
		Method:      s.Method,
		Amount:      s.Amount,
		Message:     s.Message,
		SettledBy:   settledBy,
		Timestamp:   time.Now().UTC(),
	}
}

// GenerateRoutingKey generates a routing key for checkout messages
func GenerateRoutingKey(method string) string {
	return "checkout." + strings.ToLower(method)
}
