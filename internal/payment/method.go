package payment

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnimplemented is returned by methods that do not provide Pay.
var ErrUnimplemented = errors.New("payment method does not implement Pay")

// ErrReport wraps reporter failures. The payment itself went through.
var ErrReport = errors.New("settlement report failed")

// Method names
const (
	MethodCard = "card"
	MethodCash = "cash"
)

// Settlement is the report a Method produces for a paid amount. It carries no
// success flag: a cash shortfall is reported, not failed.
type Settlement struct {
	Method  string          `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message"`
}

// Method settles a computed amount.
type Method interface {
	Pay(amount decimal.Decimal) (Settlement, error)
}

// UnimplementedMethod can be embedded by methods still under construction.
type UnimplementedMethod struct{}

func (UnimplementedMethod) Pay(decimal.Decimal) (Settlement, error) {
	return Settlement{}, ErrUnimplemented
}

// CardPayment charges a card. No balance check is made.
type CardPayment struct {
	Number string
	CVV    string
}

func NewCard(number, cvv string) *CardPayment {
	return &CardPayment{Number: number, CVV: cvv}
}

func (c *CardPayment) Pay(amount decimal.Decimal) (Settlement, error) {
	return Settlement{
		Method:  MethodCard,
		Amount:  amount,
		Message: fmt.Sprintf("Paid %s with card ending in %s", amount.StringFixed(2), c.LastFour()),
	}, nil
}

// LastFour returns the last four digits of the card number, or the whole
// number when it is shorter.
func (c *CardPayment) LastFour() string {
	r := []rune(c.Number)
	if len(r) <= 4 {
		return c.Number
	}
	return string(r[len(r)-4:])
}

// CashPayment settles with the cash handed over.
type CashPayment struct {
	Tendered decimal.Decimal
}

func NewCash(tendered decimal.Decimal) *CashPayment {
	return &CashPayment{Tendered: tendered}
}

func (c *CashPayment) Pay(amount decimal.Decimal) (Settlement, error) {
	s := Settlement{Method: MethodCash, Amount: amount}
	if c.Tendered.GreaterThanOrEqual(amount) {
		s.Message = fmt.Sprintf("Cash payment accepted. Change: %s", c.Tendered.Sub(amount).StringFixed(2))
	} else {
		s.Message = fmt.Sprintf("Insufficient funds. %s short of the total", amount.Sub(c.Tendered).StringFixed(2))
	}
	return s, nil
}
