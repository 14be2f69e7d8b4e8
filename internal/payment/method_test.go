package payment

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCashPayment_Pay(t *testing.T) {
	tests := []struct {
		name     string
		tendered string
		amount   string
		want     string
	}{
		{"change", "15", "10", "Cash payment accepted. Change: 5.00"},
		{"shortfall", "5", "10", "Insufficient funds. 5.00 short of the total"},
		{"exact amount", "10", "10", "Cash payment accepted. Change: 0.00"},
		{"exact decimal amount", "0.3", "0.3", "Cash payment accepted. Change: 0.00"},
		{"decimal sum boundary", "11.8", "11.80", "Cash payment accepted. Change: 0.00"},
		{"one cent short", "9.99", "10", "Insufficient funds. 0.01 short of the total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewCash(dec(tt.tendered)).Pay(dec(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, MethodCash, s.Method)
			assert.True(t, dec(tt.amount).Equal(s.Amount))
			assert.Equal(t, tt.want, s.Message)
		})
	}
}

func TestCardPayment_Pay(t *testing.T) {
	s, err := NewCard("4111111111111234", "123").Pay(dec("11.8"))
	require.NoError(t, err)
	assert.Equal(t, MethodCard, s.Method)
	assert.Equal(t, "Paid 11.80 with card ending in 1234", s.Message)
	assert.NotContains(t, s.Message, "4111")
	assert.NotContains(t, s.Message, "123 ")
}

func TestCardPayment_LastFour(t *testing.T) {
	assert.Equal(t, "4321", NewCard("9999888877774321", "").LastFour())
	assert.Equal(t, "12", NewCard("12", "").LastFour())
	assert.Equal(t, "", NewCard("", "").LastFour())
}

type draftMethod struct {
	UnimplementedMethod
}

func TestUnimplementedMethod(t *testing.T) {
	var m Method = draftMethod{}
	_, err := m.Pay(dec("1"))
	assert.True(t, errors.Is(err, ErrUnimplemented))
}
