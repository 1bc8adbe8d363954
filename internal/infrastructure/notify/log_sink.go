// Package notify provides NotificationSink adapters. Actual SMS/email
// delivery is owned by an external gateway; the adapters here hand the
// message off and report failures without blocking the caller's flow.
package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogSink writes notifications to the application log. It stands in for
// a real gateway in development and in deployments without one.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Send logs the notification
func (s *LogSink) Send(ctx context.Context, customerID uuid.UUID, message string) error {
	s.logger.Info("customer notification",
		zap.String("customer_id", customerID.String()),
		zap.String("message", message))
	return nil
}
