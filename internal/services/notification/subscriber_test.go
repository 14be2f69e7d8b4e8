package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/messaging"
	"restaurant-billing/internal/models"
)

var settledAt = time.Date(2026, 10, 14, 12, 30, 0, 0, time.UTC)

func TestFormatNotification(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"card", "💳 [2026-10-14 12:30:00] Order ORD_1: done"},
		{"cash", "💵 [2026-10-14 12:30:00] Order ORD_1: done"},
		{"voucher", "📋 [2026-10-14 12:30:00] Order ORD_1 settled by worker-1 for 11.80: done"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := formatNotification(&models.SettlementMessage{
				OrderNumber: "ORD_1",
				Method:      tt.method,
				Amount:      decimal.RequireFromString("11.8"),
				Message:     "done",
				SettledBy:   "worker-1",
				Timestamp:   settledAt,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleNotification(t *testing.T) {
	var out bytes.Buffer
	s := &Subscriber{logger: logger.NewWithWriter("test", io.Discard), out: &out}

	body, err := json.Marshal(&models.SettlementMessage{
		OrderNumber: "ORD_20261014_ABCDEF12",
		Method:      "cash",
		Amount:      decimal.NewFromInt(10),
		Message:     "Cash payment accepted. Change: 0.00",
		SettledBy:   "worker-1",
		Timestamp:   settledAt,
	})
	require.NoError(t, err)

	require.NoError(t, s.handleNotification(context.Background(), body))
	assert.Equal(t, "💵 [2026-10-14 12:30:00] Order ORD_20261014_ABCDEF12: Cash payment accepted. Change: 0.00\n", out.String())

	err = s.handleNotification(context.Background(), []byte("not json"))
	assert.True(t, errors.Is(err, messaging.ErrDiscard))
}
