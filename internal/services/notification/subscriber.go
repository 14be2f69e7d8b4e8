package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/messaging"
	"restaurant-billing/internal/models"
	"restaurant-billing/internal/payment"
)

// Subscriber prints settlement notifications
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
	out      io.Writer
}

// NewSubscriber creates a new notification subscriber writing to stdout
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		out:      os.Stdout,
	}
}

// Start consumes settlements until ctx is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	done := make(chan error, 1)
	go func() {
		done <- s.consumer.StartConsuming(ctx, s.handleNotification)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		s.gracefulShutdown(requestID)
		return nil
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("consumer stopped: %w", err)
		}
		return nil
	}
}

// handleNotification processes one settlement message
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.RequestID(ctx)

	var settlement models.SettlementMessage
	if err := json.Unmarshal(body, &settlement); err != nil {
		return fmt.Errorf("%w: parse settlement: %v", messaging.ErrDiscard, err)
	}

	s.logger.Debug("notification_received", "Received settlement notification", requestID, map[string]interface{}{
		"order_number": settlement.OrderNumber,
		"method":       settlement.Method,
		"settled_by":   settlement.SettledBy,
	})

	s.displayNotification(requestID, &settlement)
	return nil
}

// displayNotification prints a human-readable line and logs it
func (s *Subscriber) displayNotification(requestID string, settlement *models.SettlementMessage) {
	fmt.Fprintln(s.out, formatNotification(settlement))

	s.logger.Info("notification_displayed", "Notification displayed to user", requestID, map[string]interface{}{
		"order_number": settlement.OrderNumber,
		"method":       settlement.Method,
		"amount":       settlement.Amount.StringFixed(2),
		"settled_by":   settlement.SettledBy,
		"timestamp":    settlement.Timestamp.Format("2006-01-02 15:04:05"),
	})
}

// formatNotification creates a human-readable notification message
func formatNotification(settlement *models.SettlementMessage) string {
	timestamp := settlement.Timestamp.Format("2006-01-02 15:04:05")

	switch settlement.Method {
	case payment.MethodCard:
		return fmt.Sprintf("💳 [%s] Order %s: %s", timestamp, settlement.OrderNumber, settlement.Message)
	case payment.MethodCash:
		return fmt.Sprintf("💵 [%s] Order %s: %s", timestamp, settlement.OrderNumber, settlement.Message)
	default:
		return fmt.Sprintf("📋 [%s] Order %s settled by %s for %s: %s",
			timestamp,
			settlement.OrderNumber,
			settlement.SettledBy,
			settlement.Amount.StringFixed(2),
			settlement.Message,
		)
	}
}

func (s *Subscriber) gracefulShutdown(requestID string) {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
}
