package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-billing/internal/order"
)

// Payment binds an order to the method that settles it.
type Payment struct {
	order    *order.Order
	method   Method
	reporter Reporter
}

// New creates a checkout for o. reporter may be nil.
func New(o *order.Order, method Method, reporter Reporter) *Payment {
	return &Payment{order: o, method: method, reporter: reporter}
}

func (p *Payment) Method() Method {
	return p.method
}

// FinalAmount prices the order. A positive discount replaces the beverage
// rule with a flat percentage off every item.
func (p *Payment) FinalAmount(discountPercentage decimal.Decimal) decimal.Decimal {
	if discountPercentage.IsPositive() {
		return p.order.ApplyDiscount(discountPercentage)
	}
	return p.order.TotalBill()
}

// Process prices the order and settles it. For cash, amountPaid replaces the
// tendered amount first (nil means nothing was handed over); other methods
// ignore it.
func (p *Payment) Process(ctx context.Context, discountPercentage decimal.Decimal, amountPaid *decimal.Decimal) (Settlement, error) {
	if p.method == nil {
		return Settlement{}, ErrUnimplemented
	}
	total := p.FinalAmount(discountPercentage)

	if cash, ok := p.method.(*CashPayment); ok {
		cash.Tendered = decimal.Zero
		if amountPaid != nil {
			cash.Tendered = *amountPaid
		}
	}

	s, err := p.method.Pay(total)
	if err != nil {
		return Settlement{}, fmt.Errorf("pay %s: %w", total.StringFixed(2), err)
	}

	if p.reporter != nil {
		if err := p.reporter.Report(ctx, s); err != nil {
			return s, fmt.Errorf("%w: %w", ErrReport, err)
		}
	}
	return s, nil
}
