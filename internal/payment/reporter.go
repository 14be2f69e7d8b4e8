package payment

import (
	"context"

	"restaurant-billing/internal/logger"
)

// Reporter publishes settlement reports.
type Reporter interface {
	Report(ctx context.Context, s Settlement) error
}

// LogReporter writes settlements to the structured log.
type LogReporter struct {
	logger *logger.Logger
}

func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{logger: log}
}

func (r *LogReporter) Report(ctx context.Context, s Settlement) error {
	r.logger.Info("payment_settled", s.Message, logger.RequestID(ctx), map[string]interface{}{
		"method": s.Method,
		"amount": s.Amount.StringFixed(2),
	})
	return nil
}

// Reporters fans a settlement out to every reporter and returns the first error.
type Reporters []Reporter

func (rs Reporters) Report(ctx context.Context, s Settlement) error {
	var first error
	for _, r := range rs {
		if err := r.Report(ctx, s); err != nil && first == nil {
			first = err
		}
	}
	return first
}
