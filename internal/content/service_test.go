package content

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"content-backend/internal/briefs"
	"content-backend/internal/clients"
)

type stubDeliverer struct {
	mu        sync.Mutex
	ok        bool
	delivered []string
}

func (s *stubDeliverer) Deliver(ctx context.Context, recipient, subject, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, recipient)
	return s.ok
}

func newTestService(t *testing.T, deliverer *stubDeliverer) (*Service, briefs.Brief) {
	t.Helper()
	clientSvc := &clients.Service{Repo: clients.NewMemoryRepo()}
	client, err := clientSvc.GetOrCreate(context.Background(), "client@example.com", "Client")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	briefSvc := &briefs.Service{Repo: briefs.NewMemoryRepo()}
	brief, err := briefSvc.Submit(context.Background(), briefs.SubmitParams{
		ClientID:  client.ID,
		BriefText: "Write something.",
		Topic:     "Testing",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Briefs:    briefSvc,
		Clients:   clientSvc,
		Deliverer: deliverer,
	}
	return svc, brief
}

func seedContent(t *testing.T, svc *Service, briefID, status string, needsReview bool) Content {
	t.Helper()
	item := Content{
		ID:             "content-" + status + "-" + time.Now().Format("150405.000000000"),
		BriefID:        briefID,
		GeneratedText:  "# Testing\n\nGenerated body.",
		NeedsReview:    needsReview,
		DeliveryStatus: status,
		ModelUsed:      "anthropic/claude-3-sonnet-20240229",
		CreatedAt:      time.Now().UTC(),
	}
	if err := svc.Repo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return item
}

func TestApproveMovesToReadyAndDelivers(t *testing.T) {
	deliverer := &stubDeliverer{ok: true}
	svc, brief := newTestService(t, deliverer)
	item := seedContent(t, svc, brief.ID, StatusReviewNeeded, true)

	approved, err := svc.Approve(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.DeliveryStatus != StatusReadyForDelivery || approved.NeedsReview {
		t.Fatalf("approved = %+v", approved)
	}

	// Async delivery marks the row delivered.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, _ := svc.Get(context.Background(), item.ID)
		if got.DeliveryStatus == StatusDelivered {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("content never delivered, status = %q", got.DeliveryStatus)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deliverer.mu.Lock()
	defer deliverer.mu.Unlock()
	if len(deliverer.delivered) != 1 || deliverer.delivered[0] != "client@example.com" {
		t.Fatalf("delivered to %v", deliverer.delivered)
	}
}

func TestApproveRejectsTerminalStates(t *testing.T) {
	svc, brief := newTestService(t, &stubDeliverer{ok: true})
	item := seedContent(t, svc, brief.ID, StatusDelivered, false)

	if _, err := svc.Approve(context.Background(), item.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRejectStoresFeedback(t *testing.T) {
	svc, brief := newTestService(t, &stubDeliverer{ok: true})
	item := seedContent(t, svc, brief.ID, StatusReviewNeeded, true)

	rejected, err := svc.Reject(context.Background(), item.ID, "tone is off")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.DeliveryStatus != StatusRejected || rejected.Feedback != "tone is off" {
		t.Fatalf("rejected = %+v", rejected)
	}

	if _, err := svc.Reject(context.Background(), item.ID, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second reject err = %v, want ErrInvalidTransition", err)
	}
}

func TestDeliverFailureKeepsReady(t *testing.T) {
	deliverer := &stubDeliverer{ok: false}
	svc, brief := newTestService(t, deliverer)
	item := seedContent(t, svc, brief.ID, StatusReadyForDelivery, false)

	if ok := svc.Deliver(context.Background(), item); ok {
		t.Fatal("expected delivery failure")
	}
	got, _ := svc.Get(context.Background(), item.ID)
	if got.DeliveryStatus != StatusReadyForDelivery {
		t.Fatalf("status = %q, want ready_for_delivery kept", got.DeliveryStatus)
	}
}

func TestDeliverSkipsNonReadyContent(t *testing.T) {
	deliverer := &stubDeliverer{ok: true}
	svc, brief := newTestService(t, deliverer)
	item := seedContent(t, svc, brief.ID, StatusReviewNeeded, true)

	if ok := svc.Deliver(context.Background(), item); ok {
		t.Fatal("review_needed content must not be delivered")
	}
	deliverer.mu.Lock()
	defer deliverer.mu.Unlock()
	if len(deliverer.delivered) != 0 {
		t.Fatalf("deliverer called for non-ready content: %v", deliverer.delivered)
	}
}

func TestQualitySetOnce(t *testing.T) {
	svc, brief := newTestService(t, &stubDeliverer{ok: true})
	item := seedContent(t, svc, brief.ID, StatusPending, true)

	if err := svc.Repo.SetQuality(context.Background(), item.ID, 85, false, StatusReadyForDelivery); err != nil {
		t.Fatalf("SetQuality: %v", err)
	}
	err := svc.Repo.SetQuality(context.Background(), item.ID, 40, true, StatusReviewNeeded)
	if !errors.Is(err, ErrQualityAlreadySet) {
		t.Fatalf("err = %v, want ErrQualityAlreadySet", err)
	}
	got, _ := svc.Get(context.Background(), item.ID)
	if got.QualityScore == nil || *got.QualityScore != 85 {
		t.Fatalf("score = %v, want first write kept", got.QualityScore)
	}
}
