package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validRequest() *CheckoutRequest {
	return &CheckoutRequest{
		Items: []ItemRequest{
			{Name: "Steak", Price: decimal.NewFromInt(10), Type: "MainCourse", Extra: "medium"},
			{Name: "Cola", Price: decimal.NewFromInt(2), Type: "Beverage", Extra: "330ml"},
		},
		Payment: PaymentRequest{Method: "card", CardNumber: "4111111111111234", CVV: "123"},
	}
}

func TestValidateCheckoutRequest(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name      string
		mutate    func(r *CheckoutRequest)
		wantField string
	}{
		{name: "valid card request", mutate: func(r *CheckoutRequest) {}},
		{
			name:   "valid cash request without amount",
			mutate: func(r *CheckoutRequest) { r.Payment = PaymentRequest{Method: "cash"} },
		},
		{
			name:      "empty items",
			mutate:    func(r *CheckoutRequest) { r.Items = nil },
			wantField: "items",
		},
		{
			name: "too many items",
			mutate: func(r *CheckoutRequest) {
				for len(r.Items) <= maxItems {
					r.Items = append(r.Items, r.Items[0])
				}
			},
			wantField: "items",
		},
		{
			name:      "missing item name",
			mutate:    func(r *CheckoutRequest) { r.Items[1].Name = "" },
			wantField: "items[1].name",
		},
		{
			name:      "long item name",
			mutate:    func(r *CheckoutRequest) { r.Items[0].Name = strings.Repeat("x", maxNameLength+1) },
			wantField: "items[0].name",
		},
		{
			name:      "unknown item type",
			mutate:    func(r *CheckoutRequest) { r.Items[0].Type = "Dessert" },
			wantField: "items[0].type",
		},
		{
			name:      "negative price",
			mutate:    func(r *CheckoutRequest) { r.Items[0].Price = negative },
			wantField: "items[0].price",
		},
		{
			name:      "discount above 100",
			mutate:    func(r *CheckoutRequest) { r.DiscountPercentage = decimal.NewFromInt(101) },
			wantField: "discount_percentage",
		},
		{
			name:      "negative discount",
			mutate:    func(r *CheckoutRequest) { r.DiscountPercentage = negative },
			wantField: "discount_percentage",
		},
		{
			name:      "missing method",
			mutate:    func(r *CheckoutRequest) { r.Payment.Method = "" },
			wantField: "payment.method",
		},
		{
			name:      "unknown method",
			mutate:    func(r *CheckoutRequest) { r.Payment.Method = "crypto" },
			wantField: "payment.method",
		},
		{
			name:      "short card number",
			mutate:    func(r *CheckoutRequest) { r.Payment.CardNumber = "12" },
			wantField: "payment.card_number",
		},
		{
			name:      "non numeric card number",
			mutate:    func(r *CheckoutRequest) { r.Payment.CardNumber = "4111-1111" },
			wantField: "payment.card_number",
		},
		{
			name:      "missing cvv",
			mutate:    func(r *CheckoutRequest) { r.Payment.CVV = "" },
			wantField: "payment.cvv",
		},
		{
			name:      "negative cash",
			mutate:    func(r *CheckoutRequest) { r.Payment = PaymentRequest{Method: "cash", AmountPaid: &negative} },
			wantField: "payment.amount_paid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateMenuName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"menu_principal", false},
		{"", true},
		{"../etc/passwd", true},
		{"lunch.json", true},
		{strings.Repeat("m", 101), true},
	}

	for _, tt := range tests {
		err := ValidateMenuName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMenuName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
