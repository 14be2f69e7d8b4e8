package payment

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/menu"
	"restaurant-billing/internal/order"
)

type recordingReporter struct {
	reports []Settlement
	err     error
}

func (r *recordingReporter) Report(_ context.Context, s Settlement) error {
	r.reports = append(r.reports, s)
	return r.err
}

func steakAndCola() *order.Order {
	o := order.New()
	o.AddItem(menu.NewMainCourse("Steak", dec("10"), "medium"))
	o.AddItem(menu.NewBeverage("Cola", dec("2"), "330ml"))
	return o
}

func TestFinalAmount(t *testing.T) {
	p := New(steakAndCola(), NewCard("4111111111111234", "123"), nil)

	assert.True(t, dec("11.8").Equal(p.FinalAmount(decimal.Zero)))
	assert.True(t, dec("9.6").Equal(p.FinalAmount(dec("20"))))
	// non-positive percentages fall back to the beverage rule
	assert.True(t, dec("11.8").Equal(p.FinalAmount(dec("-5"))))
}

func TestProcess_CashOverwritesTendered(t *testing.T) {
	cash := NewCash(dec("100"))
	rep := &recordingReporter{}
	p := New(steakAndCola(), cash, rep)

	paid := dec("15")
	s, err := p.Process(context.Background(), decimal.Zero, &paid)
	require.NoError(t, err)

	assert.True(t, paid.Equal(cash.Tendered))
	assert.True(t, dec("11.8").Equal(s.Amount))
	assert.Equal(t, "Cash payment accepted. Change: 3.20", s.Message)
	require.Len(t, rep.reports, 1)
	assert.Equal(t, s, rep.reports[0])
}

func TestProcess_CashWithoutAmountPaid(t *testing.T) {
	cash := NewCash(dec("100"))
	p := New(steakAndCola(), cash, nil)

	s, err := p.Process(context.Background(), dec("20"), nil)
	require.NoError(t, err)
	assert.True(t, cash.Tendered.IsZero())
	assert.Equal(t, "Insufficient funds. 9.60 short of the total", s.Message)
}

func TestProcess_CardIgnoresAmountPaid(t *testing.T) {
	card := NewCard("4111111111111234", "123")
	p := New(steakAndCola(), card, nil)

	paid := dec("1")
	s, err := p.Process(context.Background(), dec("20"), &paid)
	require.NoError(t, err)
	assert.Equal(t, "Paid 9.60 with card ending in 1234", s.Message)
	assert.Same(t, card, p.Method())
}

func TestProcess_Errors(t *testing.T) {
	_, err := New(steakAndCola(), nil, nil).Process(context.Background(), decimal.Zero, nil)
	assert.True(t, errors.Is(err, ErrUnimplemented))

	_, err = New(steakAndCola(), draftMethod{}, nil).Process(context.Background(), decimal.Zero, nil)
	assert.True(t, errors.Is(err, ErrUnimplemented))

	rep := &recordingReporter{err: errors.New("broker down")}
	s, err := New(steakAndCola(), NewCard("1234", ""), rep).Process(context.Background(), decimal.Zero, nil)
	assert.True(t, errors.Is(err, ErrReport))
	assert.False(t, errors.Is(err, ErrUnimplemented))
	assert.Equal(t, MethodCard, s.Method)
}

func TestReporters(t *testing.T) {
	var buf bytes.Buffer
	first := &recordingReporter{err: errors.New("first")}
	second := &recordingReporter{}
	rs := Reporters{NewLogReporter(logger.NewWithWriter("test", &buf)), first, second}

	s := Settlement{Method: MethodCard, Amount: dec("5"), Message: "Paid 5.00 with card ending in 1234"}
	err := rs.Report(context.Background(), s)

	assert.EqualError(t, err, "first")
	assert.Len(t, second.reports, 1)
	assert.Contains(t, buf.String(), "payment_settled")
	assert.Contains(t, buf.String(), "Paid 5.00 with card ending in 1234")
}
