package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/metrics"
	"restaurant-billing/internal/models"
	"restaurant-billing/internal/web"
)

type fakePublisher struct {
	published []*models.CheckoutMessage
	err       error
}

func (f *fakePublisher) PublishCheckout(_ context.Context, msg *models.CheckoutMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func newTestRouter(pub CheckoutPublisher, healthy HealthFunc) (*web.Router, *metrics.Metrics) {
	log := logger.NewWithWriter("test", io.Discard)
	m := metrics.New("menu-service")
	rt := web.NewRouter(log, m)
	h := NewHandler(pub, healthy, log)
	h.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }
	h.RegisterRoutes(rt)
	return rt, m
}

func post(rt http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

const checkoutBody = `{
	"items": [
		{"name": "Steak", "price": 10, "type": "MainCourse", "extra": "medium"},
		{"name": "Cola", "price": 2, "type": "Beverage", "extra": "330ml"}
	],
	"payment": {"method": "cash", "amount_paid": 15}
}`

func TestCreateOrder(t *testing.T) {
	pub := &fakePublisher{}
	rt, _ := newTestRouter(pub, nil)

	rec := post(rt, checkoutBody)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp models.CheckoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.StatusQueued, resp.Status)
	assert.True(t, decimal.RequireFromString("11.8").Equal(resp.FinalAmount))
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "ORD_20261014_"))

	require.Len(t, pub.published, 1)
	msg := pub.published[0]
	assert.Equal(t, resp.OrderNumber, msg.OrderNumber)
	assert.Len(t, msg.Items, 2)
	require.NotNil(t, msg.Payment.AmountPaid)
	assert.True(t, decimal.NewFromInt(15).Equal(*msg.Payment.AmountPaid))
}

func TestCreateOrder_DiscountBypassesBeverageRule(t *testing.T) {
	pub := &fakePublisher{}
	rt, _ := newTestRouter(pub, nil)

	body := strings.Replace(checkoutBody, `"payment"`, `"discount_percentage": 20, "payment"`, 1)
	rec := post(rt, body)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp models.CheckoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, decimal.RequireFromString("9.6").Equal(resp.FinalAmount))
}

func TestCreateOrder_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		pub  *fakePublisher
		want int
	}{
		{"invalid json", `{"items":`, &fakePublisher{}, http.StatusBadRequest},
		{"no items", `{"items": [], "payment": {"method": "cash"}}`, &fakePublisher{}, http.StatusBadRequest},
		{"bad method", strings.Replace(checkoutBody, `"cash"`, `"cheque"`, 1), &fakePublisher{}, http.StatusBadRequest},
		{"publish failure", checkoutBody, &fakePublisher{err: errors.New("broker down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, _ := newTestRouter(tt.pub, nil)
			rec := post(rt, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, tt.pub.published)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	for _, healthy := range []bool{true, false} {
		rt, m := newTestRouter(&fakePublisher{}, func(context.Context) bool { return healthy })

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		want := http.StatusOK
		if !healthy {
			want = http.StatusServiceUnavailable
		}
		assert.Equal(t, want, rec.Code)
		assert.NotNil(t, m)
	}
}
