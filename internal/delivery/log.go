package delivery

import (
	"context"

	"content-backend/internal/shared/telemetry"
)

// LogDeliverer records deliveries without sending anything. Used when SMTP is
// not configured, typically in development.
type LogDeliverer struct{}

// Deliver logs the would-be delivery and reports success.
func (LogDeliverer) Deliver(ctx context.Context, recipient, subject, text string) bool {
	telemetry.Info("delivery.logged", map[string]any{
		"recipient": recipient,
		"subject":   subject,
		"bytes":     len(text),
	})
	return true
}

var _ Deliverer = LogDeliverer{}
