package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"content-backend/internal/briefs"
	"content-backend/internal/shared/telemetry"
)

// Scheduler hands a paid brief to the generation pipeline. Wired to the job
// queue when one is configured, otherwise to an in-process goroutine.
type Scheduler interface {
	Schedule(ctx context.Context, briefID string) error
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(ctx context.Context, briefID string) error

// Schedule calls the wrapped function.
func (f SchedulerFunc) Schedule(ctx context.Context, briefID string) error {
	return f(ctx, briefID)
}

// Service contains business logic for payments.
type Service struct {
	Repo      Repo
	Gateway   Gateway
	Briefs    *briefs.Service
	Scheduler Scheduler
}

// OpenIntent opens a provider intent for a new brief and records the pending
// payment. Satisfies the submission flow's PaymentOpener.
func (s *Service) OpenIntent(ctx context.Context, clientID, briefID string, amount float64) (string, string, error) {
	intent, err := s.Gateway.CreateIntent(ctx, clientID, amount)
	if err != nil {
		return "", "", fmt.Errorf("create intent: %w", err)
	}

	payment := Payment{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		BriefID:     briefID,
		Amount:      intent.Amount,
		Status:      StatusPending,
		ProviderRef: intent.Ref,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, payment); err != nil {
		return "", "", fmt.Errorf("save payment: %w", err)
	}
	return payment.ID, intent.Ref, nil
}

// Confirm verifies the provider intent, marks the payment and brief paid, and
// schedules generation. It returns as soon as the work is queued.
func (s *Service) Confirm(ctx context.Context, briefID, providerRef string) (Payment, error) {
	paid, err := s.Gateway.ConfirmIntent(ctx, providerRef)
	if err != nil {
		return Payment{}, fmt.Errorf("confirm intent: %w", err)
	}
	if !paid {
		return Payment{}, ErrPaymentFailed
	}

	payment, err := s.Repo.GetByProviderRef(ctx, providerRef)
	if err != nil {
		return Payment{}, err
	}
	if payment.BriefID != briefID {
		return Payment{}, fmt.Errorf("%w: intent belongs to another brief", ErrNotFound)
	}

	if err := s.Repo.UpdateStatus(ctx, payment.ID, StatusPaid); err != nil {
		return Payment{}, err
	}
	payment.Status = StatusPaid

	if err := s.Briefs.Advance(ctx, briefID, briefs.StatusPaid, ""); err != nil {
		return Payment{}, err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.Schedule(ctx, briefID); err != nil {
			telemetry.Error("payments.schedule_failed", map[string]any{
				"brief_id": briefID,
				"error":    err.Error(),
			})
		}
	}

	telemetry.Info("payments.confirmed", map[string]any{
		"payment_id": payment.ID,
		"brief_id":   briefID,
		"amount":     payment.Amount,
	})
	return payment, nil
}

// ListByBrief returns a brief's payments, newest first.
func (s *Service) ListByBrief(ctx context.Context, briefID string) ([]Payment, error) {
	return s.Repo.ListByBrief(ctx, briefID)
}
