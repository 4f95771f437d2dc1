package payments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"content-backend/internal/briefs"
)

type stubGateway struct {
	confirm bool
	err     error
}

func (g stubGateway) CreateIntent(ctx context.Context, clientID string, amount float64) (Intent, error) {
	if g.err != nil {
		return Intent{}, g.err
	}
	return Intent{Ref: "stub_pi_1", Amount: amount}, nil
}

func (g stubGateway) ConfirmIntent(ctx context.Context, intentRef string) (bool, error) {
	return g.confirm, g.err
}

type recordingScheduler struct {
	mu       sync.Mutex
	briefIDs []string
}

func (r *recordingScheduler) Schedule(ctx context.Context, briefID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.briefIDs = append(r.briefIDs, briefID)
	return nil
}

func newPaymentService(t *testing.T, gateway Gateway, scheduler Scheduler) (*Service, briefs.Brief) {
	t.Helper()
	briefSvc := &briefs.Service{Repo: briefs.NewMemoryRepo()}
	brief, err := briefSvc.Submit(context.Background(), briefs.SubmitParams{
		ClientID:  "client-1",
		BriefText: "Write a post.",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Gateway:   gateway,
		Briefs:    briefSvc,
		Scheduler: scheduler,
	}
	return svc, brief
}

func TestConfirmMarksPaidAndSchedules(t *testing.T) {
	scheduler := &recordingScheduler{}
	svc, brief := newPaymentService(t, stubGateway{confirm: true}, scheduler)

	_, ref, err := svc.OpenIntent(context.Background(), "client-1", brief.ID, 75)
	if err != nil {
		t.Fatalf("OpenIntent: %v", err)
	}

	payment, err := svc.Confirm(context.Background(), brief.ID, ref)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if payment.Status != StatusPaid {
		t.Fatalf("payment status = %q, want paid", payment.Status)
	}

	got, _ := svc.Briefs.Get(context.Background(), brief.ID)
	if got.Status != briefs.StatusPaid {
		t.Fatalf("brief status = %q, want paid", got.Status)
	}
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if len(scheduler.briefIDs) != 1 || scheduler.briefIDs[0] != brief.ID {
		t.Fatalf("scheduled = %v", scheduler.briefIDs)
	}
}

func TestConfirmRejectedByGateway(t *testing.T) {
	scheduler := &recordingScheduler{}
	svc, brief := newPaymentService(t, stubGateway{confirm: false}, scheduler)

	_, ref, err := svc.OpenIntent(context.Background(), "client-1", brief.ID, 75)
	if err != nil {
		t.Fatalf("OpenIntent: %v", err)
	}
	if _, err := svc.Confirm(context.Background(), brief.ID, ref); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("err = %v, want ErrPaymentFailed", err)
	}

	got, _ := svc.Briefs.Get(context.Background(), brief.ID)
	if got.Status != briefs.StatusPending {
		t.Fatalf("brief status = %q, want unchanged pending", got.Status)
	}
	if len(scheduler.briefIDs) != 0 {
		t.Fatalf("nothing should be scheduled, got %v", scheduler.briefIDs)
	}
}

func TestConfirmUnknownIntent(t *testing.T) {
	svc, brief := newPaymentService(t, stubGateway{confirm: true}, nil)
	if _, err := svc.Confirm(context.Background(), brief.ID, "stub_pi_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConfirmIntentForDifferentBrief(t *testing.T) {
	svc, brief := newPaymentService(t, stubGateway{confirm: true}, nil)
	_, ref, err := svc.OpenIntent(context.Background(), "client-1", brief.ID, 75)
	if err != nil {
		t.Fatalf("OpenIntent: %v", err)
	}
	if _, err := svc.Confirm(context.Background(), "other-brief", ref); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDevGatewayRoundTrip(t *testing.T) {
	g := DevGateway{}
	intent, err := g.CreateIntent(context.Background(), "client-1", 75)
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	ok, err := g.ConfirmIntent(context.Background(), intent.Ref)
	if err != nil || !ok {
		t.Fatalf("ConfirmIntent = %v, %v", ok, err)
	}
	ok, _ = g.ConfirmIntent(context.Background(), "pi_foreign")
	if ok {
		t.Fatal("foreign ref must not confirm")
	}
}
