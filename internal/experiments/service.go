package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"content-backend/internal/briefs"
	"content-backend/internal/content"
	"content-backend/internal/generation"
	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/telemetry"
)

// ContentGenerator produces one content row for a brief. Satisfied by the
// generation service.
type ContentGenerator interface {
	Generate(ctx context.Context, brief briefs.Brief, opts generation.Options) (content.Content, error)
}

// Service contains business logic for A/B experiments.
type Service struct {
	Repo      Repo
	Briefs    *briefs.Service
	Contents  content.Repo
	Generator ContentGenerator
}

// Create runs one generation per variant, strictly in index order, and
// persists the experiment only once every variant has content. A failing
// variant aborts the whole experiment; nothing partial becomes visible.
func (s *Service) Create(ctx context.Context, briefID string, specs []VariantSpec) (Experiment, error) {
	if len(specs) < 2 {
		return Experiment{}, ErrInvalidExperiment
	}
	brief, err := s.Briefs.Get(ctx, briefID)
	if err != nil {
		return Experiment{}, err
	}

	now := time.Now().UTC()
	exp := Experiment{
		ID:        uuid.NewString(),
		BriefID:   briefID,
		Status:    StatusInProgress,
		CreatedAt: now,
	}

	variants := make([]Variant, 0, len(specs))
	for i, spec := range specs {
		item, err := s.Generator.Generate(ctx, brief, generation.Options{
			Model:      spec.Model,
			TemplateID: spec.TemplateID,
		})
		if err != nil {
			return Experiment{}, fmt.Errorf("variant %d: %w", i, err)
		}
		variants = append(variants, Variant{
			ID:           uuid.NewString(),
			ExperimentID: exp.ID,
			VariantIndex: i,
			Model:        spec.Model,
			TemplateID:   spec.TemplateID,
			Weight:       spec.Weight,
			ContentID:    item.ID,
			CreatedAt:    time.Now().UTC(),
		})
	}

	if err := s.Repo.Create(ctx, exp, variants); err != nil {
		return Experiment{}, fmt.Errorf("save experiment: %w", err)
	}
	for _, v := range variants {
		if err := s.Contents.SetVariant(ctx, v.ContentID, v.ID); err != nil {
			telemetry.Error("experiment.link_variant_failed", map[string]any{
				"experiment_id": exp.ID,
				"variant_id":    v.ID,
				"content_id":    v.ContentID,
				"error":         err.Error(),
			})
		}
	}

	metrics.IncExperimentsCreated()
	telemetry.Info("experiment.created", map[string]any{
		"experiment_id": exp.ID,
		"brief_id":      briefID,
		"variants":      len(variants),
	})
	return exp, nil
}

// Get returns an experiment by ID.
func (s *Service) Get(ctx context.Context, experimentID string) (Experiment, error) {
	if experimentID == "" {
		return Experiment{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, experimentID)
}

// List returns experiments, newest first, optionally for one brief.
func (s *Service) List(ctx context.Context, briefID string) ([]Experiment, error) {
	return s.Repo.List(ctx, briefID)
}

// SelectWinner freezes the winner and metrics. A second selection on a
// completed experiment reports false without an error.
func (s *Service) SelectWinner(ctx context.Context, experimentID string, winnerIndex int, winnerMetrics map[string]any) (bool, error) {
	exp, err := s.Repo.GetByID(ctx, experimentID)
	if err != nil {
		return false, err
	}
	if exp.Status == StatusCompleted {
		telemetry.Warn("experiment.already_completed", map[string]any{"experiment_id": experimentID})
		return false, nil
	}
	variants, err := s.Repo.Variants(ctx, experimentID)
	if err != nil {
		return false, err
	}
	if winnerIndex < 0 || winnerIndex >= len(variants) {
		return false, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, winnerIndex, len(variants))
	}

	if err := s.Repo.Complete(ctx, experimentID, winnerIndex, winnerMetrics, time.Now().UTC()); err != nil {
		return false, err
	}
	metrics.IncExperimentsDecided()
	telemetry.Info("experiment.completed", map[string]any{
		"experiment_id": experimentID,
		"winner_index":  winnerIndex,
	})
	return true, nil
}

// Results joins variants with their content rows into a full report.
func (s *Service) Results(ctx context.Context, experimentID string) (Results, error) {
	exp, err := s.Repo.GetByID(ctx, experimentID)
	if err != nil {
		return Results{}, err
	}
	variants, err := s.Repo.Variants(ctx, experimentID)
	if err != nil {
		return Results{}, err
	}

	out := Results{
		TestID:      exp.ID,
		BriefID:     exp.BriefID,
		Status:      exp.Status,
		WinnerIndex: exp.WinnerIndex,
		Metrics:     exp.Metrics,
		CreatedAt:   exp.CreatedAt,
		CompletedAt: exp.CompletedAt,
		Variants:    make([]VariantResult, 0, len(variants)),
	}
	if out.Metrics == nil {
		out.Metrics = map[string]any{}
	}

	for _, v := range variants {
		result := VariantResult{
			VariantIndex: v.VariantIndex,
			ContentID:    v.ContentID,
		}
		item, err := s.Contents.GetByID(ctx, v.ContentID)
		if err == nil {
			result.ModelUsed = item.ModelUsed
			result.GenerationTimeMs = item.GenerationTimeMs
			result.NeedsReview = item.NeedsReview
			if item.Metadata != nil {
				if id, ok := item.Metadata["template_id"].(string); ok {
					result.TemplateID = id
				}
			}
		} else {
			telemetry.Warn("experiment.content_missing", map[string]any{
				"experiment_id": experimentID,
				"content_id":    v.ContentID,
			})
		}
		if exp.WinnerIndex != nil {
			isWinner := v.VariantIndex == *exp.WinnerIndex
			result.IsWinner = &isWinner
		}
		out.Variants = append(out.Variants, result)
	}
	return out, nil
}
