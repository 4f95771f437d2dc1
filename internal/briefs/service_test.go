package briefs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func seedBrief(t *testing.T, svc *Service, status string) Brief {
	t.Helper()
	brief, err := svc.Submit(context.Background(), SubmitParams{
		ClientID:    "client-1",
		BriefText:   "Write about compounding interest.",
		Topic:       "Compounding",
		WordCount:   500,
		ContentType: "blog",
		Industry:    "finance",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if status != StatusPending {
		if err := svc.Repo.UpdateStatus(context.Background(), brief.ID, status, ""); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
	}
	return brief
}

func TestSubmitDefaultsAndValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	brief := seedBrief(t, svc, StatusPending)
	if brief.Status != StatusPending {
		t.Fatalf("status = %q, want pending", brief.Status)
	}
	if brief.BudgetTier != "standard" {
		t.Fatalf("budget tier = %q, want standard default", brief.BudgetTier)
	}
	if brief.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := svc.Submit(context.Background(), SubmitParams{ClientID: "c", BriefText: "   "}); err == nil {
		t.Fatal("expected validation error for empty brief text")
	}
	if _, err := svc.Submit(context.Background(), SubmitParams{BriefText: "x"}); err == nil {
		t.Fatal("expected validation error for missing client id")
	}
}

func TestAdvanceMonotonic(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	brief := seedBrief(t, svc, StatusProcessing)

	if err := svc.Advance(context.Background(), brief.ID, StatusPending, ""); !errors.Is(err, ErrStatusRegression) {
		t.Fatalf("processing->pending err = %v, want ErrStatusRegression", err)
	}
	if err := svc.Advance(context.Background(), brief.ID, StatusCompleted, ""); err != nil {
		t.Fatalf("processing->completed: %v", err)
	}
	if err := svc.Advance(context.Background(), brief.ID, StatusFailed, "late failure"); !errors.Is(err, ErrStatusRegression) {
		t.Fatalf("completed->failed err = %v, want ErrStatusRegression", err)
	}

	got, err := svc.Get(context.Background(), brief.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
}

func TestAdvanceFailedKeepsReason(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	brief := seedBrief(t, svc, StatusProcessing)

	if err := svc.Advance(context.Background(), brief.ID, StatusFailed, "PROVIDER_ERROR: upstream 503"); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	got, _ := svc.Get(context.Background(), brief.ID)
	if got.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", got.Status)
	}
	if !strings.Contains(got.StatusReason, "PROVIDER_ERROR") {
		t.Fatalf("reason = %q, want cause recorded", got.StatusReason)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	seedBrief(t, svc, StatusPending)
	seedBrief(t, svc, StatusPaid)
	seedBrief(t, svc, StatusPaid)

	paid, err := svc.List(context.Background(), StatusPaid, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paid) != 2 {
		t.Fatalf("len(paid) = %d, want 2", len(paid))
	}
	all, _ := svc.List(context.Background(), "", 0, 0)
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
}
