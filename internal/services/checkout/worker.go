package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/messaging"
	"restaurant-billing/internal/metrics"
	"restaurant-billing/internal/models"
	"restaurant-billing/internal/order"
	"restaurant-billing/internal/payment"
)

// SettlementPublisher broadcasts settled checkouts
type SettlementPublisher interface {
	PublishSettlement(ctx context.Context, msg *models.SettlementMessage) error
}

// Worker settles queued checkouts
type Worker struct {
	name              string
	heartbeatInterval time.Duration

	consumer  *messaging.Consumer
	publisher SettlementPublisher
	metrics   *metrics.Metrics
	logger    *logger.Logger

	// pending is only touched from the consumer goroutine
	pending   *order.Manager
	checkouts map[*order.Order]*models.CheckoutMessage
	settled   atomic.Int64
}

// NewWorker creates a new checkout worker. m may be nil.
func NewWorker(name string, heartbeatInterval time.Duration, consumer *messaging.Consumer,
	publisher SettlementPublisher, m *metrics.Metrics, log *logger.Logger) *Worker {

	return &Worker{
		name:              name,
		heartbeatInterval: heartbeatInterval,
		consumer:          consumer,
		publisher:         publisher,
		metrics:           m,
		logger:            log,
		pending:           order.NewManager(),
		checkouts:         make(map[*order.Order]*models.CheckoutMessage),
	}
}

// Start consumes checkouts until ctx is cancelled or the consumer gives up
func (w *Worker) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	done := make(chan error, 1)
	go func() {
		done <- w.consumer.StartConsuming(ctx, w.handleMessage)
	}()

	if w.heartbeatInterval > 0 {
		go w.heartbeatLoop(ctx)
	}

	w.logger.Info("worker_started", fmt.Sprintf("Checkout worker %s started", w.name), requestID, map[string]interface{}{
		"worker_name":        w.name,
		"heartbeat_interval": w.heartbeatInterval.Seconds(),
	})

	select {
	case <-ctx.Done():
		w.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		w.gracefulShutdown(requestID)
		return nil
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("consumer stopped: %w", err)
		}
		return nil
	}
}

// handleMessage queues one checkout and settles everything pending.
// Messages that can never be settled are discarded.
func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.RequestID(ctx)

	var msg models.CheckoutMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%w: parse checkout message: %v", messaging.ErrDiscard, err)
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%w: checkout %s: %v", messaging.ErrDiscard, msg.OrderNumber, err)
	}

	o, err := msg.BuildOrder()
	if err != nil {
		return fmt.Errorf("%w: checkout %s: %v", messaging.ErrDiscard, msg.OrderNumber, err)
	}

	w.pending.Add(o)
	w.checkouts[o] = &msg

	w.logger.Debug("checkout_queued", fmt.Sprintf("Queued order %s for settlement", msg.OrderNumber), requestID, map[string]interface{}{
		"order_number":    msg.OrderNumber,
		"items":           len(o.Items()),
		"has_main_course": o.HasMainCourse(),
		"pending":         w.pending.Len(),
	})

	w.settlePending(ctx)
	return nil
}

// settlePending settles queued orders oldest first
func (w *Worker) settlePending(ctx context.Context) {
	for {
		o, ok := w.pending.Next()
		if !ok {
			return
		}
		msg := w.checkouts[o]
		delete(w.checkouts, o)
		w.settle(ctx, o, msg)
	}
}

// settle runs the payment for one order. Broadcast failures are logged; the
// settlement itself has already happened.
func (w *Worker) settle(ctx context.Context, o *order.Order, msg *models.CheckoutMessage) {
	requestID := logger.RequestID(ctx)

	method, err := msg.Payment.BuildMethod()
	if err != nil {
		w.logger.Error("settlement_failed", "Unsupported payment method", requestID, err, map[string]interface{}{
			"order_number": msg.OrderNumber,
		})
		w.observe(msg.Payment.Method, err)
		return
	}

	reporters := payment.Reporters{
		payment.NewLogReporter(w.logger),
		&broadcastReporter{orderNumber: msg.OrderNumber, worker: w.name, publisher: w.publisher},
	}
	s, err := payment.New(o, method, reporters).Process(ctx, msg.DiscountPercentage, msg.Payment.AmountPaid)
	switch {
	case errors.Is(err, payment.ErrReport):
		w.logger.Error("settlement_report_failed", "Failed to report settlement", requestID, err, map[string]interface{}{
			"order_number": msg.OrderNumber,
		})
		if w.metrics != nil {
			w.metrics.ObserveReportFailure(s.Method)
		}
	case err != nil:
		w.logger.Error("settlement_failed", "Failed to settle order", requestID, err, map[string]interface{}{
			"order_number": msg.OrderNumber,
		})
		w.observe(msg.Payment.Method, err)
		return
	}
	w.observe(s.Method, nil)
	w.settled.Add(1)

	w.logger.Debug("order_settled", fmt.Sprintf("Settled order %s", msg.OrderNumber), requestID, map[string]interface{}{
		"order_number": msg.OrderNumber,
		"method":       s.Method,
		"amount":       s.Amount.StringFixed(2),
		"settled_by":   w.name,
	})
}

func (w *Worker) observe(method string, err error) {
	if w.metrics != nil {
		w.metrics.ObserveSettlement(method, err)
	}
}

// heartbeatLoop periodically logs how many orders this worker has settled
func (w *Worker) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.logger.Debug("heartbeat_sent", "Worker alive", "", map[string]interface{}{
				"worker_name": w.name,
				"settled":     w.settled.Load(),
			})
		}
	}
}

func (w *Worker) gracefulShutdown(requestID string) {
	w.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if w.consumer != nil {
		w.consumer.Close()
	}

	w.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, map[string]interface{}{
		"settled": w.settled.Load(),
	})
}

// broadcastReporter publishes settlements to the notification fanout
type broadcastReporter struct {
	orderNumber string
	worker      string
	publisher   SettlementPublisher
}

func (r *broadcastReporter) Report(ctx context.Context, s payment.Settlement) error {
	if r.publisher == nil {
		return nil
	}
	return r.publisher.PublishSettlement(ctx, models.NewSettlementMessage(r.orderNumber, r.worker, s))
}
