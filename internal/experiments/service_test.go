package experiments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"content-backend/internal/briefs"
	"content-backend/internal/content"
	"content-backend/internal/generation"
)

type stubGenerator struct {
	contents content.Repo
	failAt   int
	calls    int
	models   []string
}

func (s *stubGenerator) Generate(ctx context.Context, brief briefs.Brief, opts generation.Options) (content.Content, error) {
	s.calls++
	s.models = append(s.models, opts.Model)
	if s.failAt > 0 && s.calls == s.failAt {
		return content.Content{}, errors.New("save content: connection refused")
	}
	item := content.Content{
		ID:             uuid.NewString(),
		BriefID:        brief.ID,
		GeneratedText:  "variant body",
		NeedsReview:    true,
		DeliveryStatus: content.StatusPending,
		ModelUsed:      opts.Model,
		Metadata:       map[string]any{"template_id": opts.TemplateID},
		CreatedAt:      time.Now().UTC(),
	}
	if opts.TemplateID == "" {
		item.Metadata = nil
	}
	if err := s.contents.Create(ctx, item); err != nil {
		return content.Content{}, err
	}
	return item, nil
}

func newExperimentService(t *testing.T, gen *stubGenerator) (*Service, briefs.Brief) {
	t.Helper()
	briefSvc := &briefs.Service{Repo: briefs.NewMemoryRepo()}
	brief, err := briefSvc.Submit(context.Background(), briefs.SubmitParams{
		ClientID:  "client-1",
		BriefText: "Compare two drafts.",
		Topic:     "Drafts",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	contents := content.NewMemoryRepo()
	gen.contents = contents
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Briefs:    briefSvc,
		Contents:  contents,
		Generator: gen,
	}
	return svc, brief
}

func twoVariants() []VariantSpec {
	return []VariantSpec{
		{Model: "anthropic/claude-3-sonnet-20240229", Weight: 0.5},
		{Model: "google/gemini-pro", Weight: 0.5},
	}
}

func TestCreateRequiresTwoVariants(t *testing.T) {
	svc, brief := newExperimentService(t, &stubGenerator{})
	_, err := svc.Create(context.Background(), brief.ID, []VariantSpec{{Model: "m"}})
	if !errors.Is(err, ErrInvalidExperiment) {
		t.Fatalf("err = %v, want ErrInvalidExperiment", err)
	}
}

func TestCreateUnknownBrief(t *testing.T) {
	svc, _ := newExperimentService(t, &stubGenerator{})
	_, err := svc.Create(context.Background(), "missing", twoVariants())
	if !errors.Is(err, briefs.ErrNotFound) {
		t.Fatalf("err = %v, want briefs.ErrNotFound", err)
	}
}

func TestCreateRunsVariantsInOrderAndLinksContent(t *testing.T) {
	gen := &stubGenerator{}
	svc, brief := newExperimentService(t, gen)

	exp, err := svc.Create(context.Background(), brief.ID, twoVariants())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if exp.Status != StatusInProgress {
		t.Fatalf("status = %q, want in_progress", exp.Status)
	}
	if gen.models[0] != "anthropic/claude-3-sonnet-20240229" || gen.models[1] != "google/gemini-pro" {
		t.Fatalf("generation order = %v", gen.models)
	}

	variants, err := svc.Repo.Variants(context.Background(), exp.ID)
	if err != nil {
		t.Fatalf("Variants: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("len(variants) = %d", len(variants))
	}
	for _, v := range variants {
		item, err := svc.Contents.GetByID(context.Background(), v.ContentID)
		if err != nil {
			t.Fatalf("content %s missing: %v", v.ContentID, err)
		}
		if item.VariantID != v.ID {
			t.Fatalf("content %s not linked to variant %s", item.ID, v.ID)
		}
	}
}

func TestCreateFailingVariantLeavesNoExperiment(t *testing.T) {
	gen := &stubGenerator{failAt: 2}
	svc, brief := newExperimentService(t, gen)

	_, err := svc.Create(context.Background(), brief.ID, twoVariants())
	if err == nil {
		t.Fatal("expected variant failure to propagate")
	}
	all, _ := svc.Repo.List(context.Background(), brief.ID)
	if len(all) != 0 {
		t.Fatalf("partial experiment persisted: %v", all)
	}
}

func TestSelectWinnerLifecycle(t *testing.T) {
	svc, brief := newExperimentService(t, &stubGenerator{})
	exp, err := svc.Create(context.Background(), brief.ID, twoVariants())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.SelectWinner(context.Background(), exp.ID, 5, nil); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("err = %v, want ErrInvalidIndex", err)
	}
	if _, err := svc.SelectWinner(context.Background(), "missing", 0, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	selected, err := svc.SelectWinner(context.Background(), exp.ID, 1, map[string]any{"ctr": 0.12})
	if err != nil || !selected {
		t.Fatalf("first selection = %v, %v", selected, err)
	}

	// A completed experiment refuses a second decision, quietly.
	selected, err = svc.SelectWinner(context.Background(), exp.ID, 0, nil)
	if err != nil {
		t.Fatalf("second selection err = %v", err)
	}
	if selected {
		t.Fatal("second selection must report false")
	}

	got, _ := svc.Get(context.Background(), exp.ID)
	if got.WinnerIndex == nil || *got.WinnerIndex != 1 {
		t.Fatalf("winner = %v, want frozen at 1", got.WinnerIndex)
	}
	if got.CompletedAt == nil {
		t.Fatal("completedAt not set")
	}
}

func TestResultsWinnerFlags(t *testing.T) {
	svc, brief := newExperimentService(t, &stubGenerator{})
	exp, err := svc.Create(context.Background(), brief.ID, []VariantSpec{
		{Model: "anthropic/claude-3-sonnet-20240229", TemplateID: "tpl-1"},
		{Model: "google/gemini-pro"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := svc.Results(context.Background(), exp.ID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	for _, v := range results.Variants {
		if v.IsWinner != nil {
			t.Fatalf("variant %d has winner flag before decision", v.VariantIndex)
		}
	}
	if results.Variants[0].TemplateID != "tpl-1" {
		t.Fatalf("template ref = %q, want parsed from metadata", results.Variants[0].TemplateID)
	}
	if results.Variants[0].ModelUsed != "anthropic/claude-3-sonnet-20240229" {
		t.Fatalf("model = %q", results.Variants[0].ModelUsed)
	}

	if _, err := svc.SelectWinner(context.Background(), exp.ID, 0, nil); err != nil {
		t.Fatalf("SelectWinner: %v", err)
	}
	results, _ = svc.Results(context.Background(), exp.ID)
	if results.Variants[0].IsWinner == nil || !*results.Variants[0].IsWinner {
		t.Fatal("variant 0 should be the winner")
	}
	if results.Variants[1].IsWinner == nil || *results.Variants[1].IsWinner {
		t.Fatal("variant 1 should be marked loser, not nil")
	}
}
