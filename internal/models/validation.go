package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-billing/internal/menu"
	"restaurant-billing/internal/payment"
)

const (
	maxItems       = 20
	maxNameLength  = 50
	maxExtraLength = 50
)

var hundred = decimal.NewFromInt(100)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a checkout request before it is priced or queued
func (r *CheckoutRequest) Validate() error {
	if err := validateItems(r.Items); err != nil {
		return err
	}
	if err := validateDiscount(r.DiscountPercentage); err != nil {
		return err
	}
	return validatePayment(r.Payment)
}

// Validate checks a menu item body
func (r ItemRequest) Validate() error {
	return validateItem(r, "")
}

// ValidateMenuName checks a catalog name used as a storage key
func ValidateMenuName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "menu name is required"}
	}
	if len(name) > 100 {
		return ValidationError{Field: "name", Message: "menu name must be less than 100 characters"}
	}
	if strings.ContainsAny(name, `/\.`) {
		return ValidationError{Field: "name", Message: "menu name must not contain path separators or dots"}
	}
	return nil
}

func validatePaymentMessage(p PaymentMessage) error {
	switch strings.ToLower(p.Method) {
	case payment.MethodCard:
		if len(p.CardLastFour) != 4 || strings.Trim(p.CardLastFour, "0123456789") != "" {
			return ValidationError{Field: "payment.card_last_four", Message: "card_last_four must be 4 digits"}
		}
	case payment.MethodCash:
		if p.AmountPaid != nil && p.AmountPaid.IsNegative() {
			return ValidationError{Field: "payment.amount_paid", Message: "amount paid must not be negative"}
		}
	case "":
		return ValidationError{Field: "payment.method", Message: "payment method is required"}
	default:
		return ValidationError{Field: "payment.method", Message: "payment method must be one of: card, cash"}
	}
	return nil
}

func validateItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ValidationError{Field: "items", Message: "items cannot be empty"}
	}
	if len(items) > maxItems {
		return ValidationError{Field: "items", Message: fmt.Sprintf("a maximum of %d items is allowed", maxItems)}
	}

	for i, item := range items {
		if err := validateItem(item, fmt.Sprintf("items[%d].", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(item ItemRequest, prefix string) error {
	if item.Name == "" {
		return ValidationError{Field: prefix + "name", Message: "item name is required"}
	}
	if len(item.Name) > maxNameLength {
		return ValidationError{Field: prefix + "name", Message: fmt.Sprintf("item name must be less than %d characters", maxNameLength)}
	}
	if !menu.Kind(item.Type).Valid() {
		return ValidationError{Field: prefix + "type", Message: "type must be one of: Beverage, Appetizer, MainCourse"}
	}
	if item.Price.IsNegative() {
		return ValidationError{Field: prefix + "price", Message: "item price must not be negative"}
	}
	if len(item.Extra) > maxExtraLength {
		return ValidationError{Field: prefix + "extra", Message: fmt.Sprintf("extra must be less than %d characters", maxExtraLength)}
	}
	return nil
}

func validateDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return ValidationError{Field: "discount_percentage", Message: "discount percentage must be between 0 and 100"}
	}
	return nil
}

func validatePayment(p PaymentRequest) error {
	switch strings.ToLower(p.Method) {
	case payment.MethodCard:
		if len(p.CardNumber) < 4 || strings.Trim(p.CardNumber, "0123456789") != "" {
			return ValidationError{Field: "payment.card_number", Message: "card number must be at least 4 digits"}
		}
		if p.CVV == "" {
			return ValidationError{Field: "payment.cvv", Message: "cvv is required for card payments"}
		}
	case payment.MethodCash:
		if p.AmountPaid != nil && p.AmountPaid.IsNegative() {
			return ValidationError{Field: "payment.amount_paid", Message: "amount paid must not be negative"}
		}
	case "":
		return ValidationError{Field: "payment.method", Message: "payment method is required"}
	default:
		return ValidationError{Field: "payment.method", Message: "payment method must be one of: card, cash"}
	}
	return nil
}
