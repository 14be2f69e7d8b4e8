package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/models"
	"restaurant-billing/internal/web"
)

// CheckoutPublisher queues checkouts for the checkout workers
type CheckoutPublisher interface {
	PublishCheckout(ctx context.Context, msg *models.CheckoutMessage) error
}

// HealthFunc reports whether the service dependencies are reachable
type HealthFunc func(ctx context.Context) bool

// Handler handles HTTP requests for checkouts
type Handler struct {
	publisher CheckoutPublisher
	healthy   HealthFunc
	logger    *logger.Logger
	now       func() time.Time
}

// NewHandler creates a new order handler
func NewHandler(publisher CheckoutPublisher, healthy HealthFunc, log *logger.Logger) *Handler {
	return &Handler{
		publisher: publisher,
		healthy:   healthy,
		logger:    log,
		now:       time.Now,
	}
}

// RegisterRoutes mounts the order and health endpoints on rt
func (h *Handler) RegisterRoutes(rt *web.Router) {
	rt.HandleFunc("POST /orders", h.CreateOrder)
	rt.HandleFunc("GET /health", h.HealthCheck)
}

// CreateOrder handles POST /orders: prices the checkout and queues it
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	var req models.CheckoutRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		status := http.StatusBadRequest
		if errors.Is(err, web.ErrUnsupportedMediaType) {
			status = http.StatusUnsupportedMediaType
		}
		web.WriteError(w, status, err.Error(), requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"items":          len(req.Items),
			"payment_method": req.Payment.Method,
		})
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	amount, err := req.Quote()
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	orderNumber := models.GenerateOrderNumber(h.now())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.publisher.PublishCheckout(ctx, models.NewCheckoutMessage(&req, orderNumber)); err != nil {
		h.logger.Error("order_publish_failed", "Failed to queue order", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.logger.Info("order_queued", "Order queued for checkout", requestID, map[string]interface{}{
		"order_number":   orderNumber,
		"final_amount":   amount.StringFixed(2),
		"payment_method": req.Payment.Method,
	})

	if err := web.WriteJSON(w, http.StatusAccepted, models.CheckoutResponse{
		OrderNumber: orderNumber,
		Status:      models.StatusQueued,
		FinalAmount: amount,
	}); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.healthy == nil || h.healthy(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "menu-service",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	web.WriteJSON(w, status, response)
}
