package content

import (
	"context"
	"fmt"

	"content-backend/internal/briefs"
	"content-backend/internal/clients"
	"content-backend/internal/delivery"
	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/telemetry"
)

// Service contains business logic for content review and delivery.
type Service struct {
	Repo      Repo
	Briefs    *briefs.Service
	Clients   *clients.Service
	Deliverer delivery.Deliverer
}

// Get returns a content row by ID.
func (s *Service) Get(ctx context.Context, contentID string) (Content, error) {
	if contentID == "" {
		return Content{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, contentID)
}

// ListByBrief returns a brief's content, newest first.
func (s *Service) ListByBrief(ctx context.Context, briefID string) ([]Content, error) {
	return s.Repo.ListByBrief(ctx, briefID)
}

// Latest returns the newest content row for a brief.
func (s *Service) Latest(ctx context.Context, briefID string) (Content, error) {
	return s.Repo.LatestByBrief(ctx, briefID)
}

// List returns content rows with optional filters, newest first.
func (s *Service) List(ctx context.Context, deliveryStatus string, needsReview *bool, limit, offset int) ([]Content, error) {
	return s.Repo.List(ctx, deliveryStatus, needsReview, limit, offset)
}

// ReviewQueue returns content waiting on a human decision.
func (s *Service) ReviewQueue(ctx context.Context, limit, offset int) ([]Content, error) {
	needsReview := true
	return s.Repo.List(ctx, "", &needsReview, limit, offset)
}

// Approve clears the review flag and moves the content to ready_for_delivery,
// then kicks off delivery in the background.
func (s *Service) Approve(ctx context.Context, contentID string) (Content, error) {
	item, err := s.Repo.GetByID(ctx, contentID)
	if err != nil {
		return Content{}, err
	}
	if !canTransition(item.DeliveryStatus, StatusReadyForDelivery) {
		return Content{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.DeliveryStatus, StatusReadyForDelivery)
	}
	if err := s.Repo.UpdateDeliveryStatus(ctx, contentID, StatusReadyForDelivery, "", false); err != nil {
		return Content{}, err
	}
	item.DeliveryStatus = StatusReadyForDelivery
	item.NeedsReview = false

	go s.deliverAsync(context.Background(), item)

	return item, nil
}

// Reject marks the content rejected with reviewer feedback.
func (s *Service) Reject(ctx context.Context, contentID, feedback string) (Content, error) {
	item, err := s.Repo.GetByID(ctx, contentID)
	if err != nil {
		return Content{}, err
	}
	if !canTransition(item.DeliveryStatus, StatusRejected) {
		return Content{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.DeliveryStatus, StatusRejected)
	}
	if err := s.Repo.UpdateDeliveryStatus(ctx, contentID, StatusRejected, feedback, false); err != nil {
		return Content{}, err
	}
	item.DeliveryStatus = StatusRejected
	item.NeedsReview = false
	item.Feedback = feedback
	return item, nil
}

// Deliver sends content that is ready to the client's email and, when the
// send succeeds, marks it delivered. A failed send leaves the row
// ready_for_delivery for a later retry.
func (s *Service) Deliver(ctx context.Context, item Content) bool {
	if item.DeliveryStatus != StatusReadyForDelivery {
		return false
	}
	if s.Deliverer == nil {
		telemetry.Error("content.delivery_unconfigured", map[string]any{"content_id": item.ID})
		return false
	}

	recipient, err := s.recipientFor(ctx, item.BriefID)
	if err != nil {
		telemetry.Error("content.delivery_no_recipient", map[string]any{
			"content_id": item.ID,
			"brief_id":   item.BriefID,
			"error":      err.Error(),
		})
		metrics.IncDeliveryFailed()
		return false
	}

	subject := "Your content is ready"
	if ok := s.Deliverer.Deliver(ctx, recipient, subject, item.GeneratedText); !ok {
		metrics.IncDeliveryFailed()
		return false
	}
	metrics.IncDeliverySent()

	if err := s.Repo.UpdateDeliveryStatus(ctx, item.ID, StatusDelivered, "", false); err != nil {
		telemetry.Error("content.mark_delivered_failed", map[string]any{
			"content_id": item.ID,
			"error":      err.Error(),
		})
	}
	return true
}

func (s *Service) deliverAsync(ctx context.Context, item Content) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("content.delivery_panic", map[string]any{"content_id": item.ID, "panic": r})
		}
	}()
	s.Deliver(ctx, item)
}

func (s *Service) recipientFor(ctx context.Context, briefID string) (string, error) {
	brief, err := s.Briefs.Get(ctx, briefID)
	if err != nil {
		return "", err
	}
	client, err := s.Clients.Get(ctx, brief.ClientID)
	if err != nil {
		return "", err
	}
	return client.Email, nil
}

// UsageRecords exposes template usage rows for analytics.
func (s *Service) UsageRecords(ctx context.Context) ([]UsageRecord, error) {
	return s.Repo.UsageRecords(ctx)
}
