package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"content-backend/internal/briefs"
	"content-backend/internal/content"
	"content-backend/internal/llm"
	"content-backend/internal/quality"
	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/telemetry"
	"content-backend/internal/templates"
)

const defaultTemperature = 0.7

// Service orchestrates content generation: model selection, prompt assembly,
// the retried provider call, persistence, and the quality/delivery pipeline.
type Service struct {
	Briefs    *briefs.Service
	Templates *templates.Service
	Contents  content.Repo
	Content   *content.Service
	LLM       llm.Client
	Selector  *Selector
	Gate      *quality.Gate
	Retry     RetryPolicy
}

// Options overrides automatic choices for one generation.
type Options struct {
	Model      string
	TemplateID string
}

// Generate produces one content row for the brief. A provider failure after
// all retries persists a placeholder row instead of returning an error; only
// lookup and persistence failures propagate.
func (s *Service) Generate(ctx context.Context, brief briefs.Brief, opts Options) (content.Content, error) {
	model := opts.Model
	if model == "" {
		model = s.Selector.Select(brief.ContentType, brief.Industry, brief.WordCount, brief.BudgetTier)
	}

	prompts, metadata := s.buildPrompts(ctx, brief, opts.TemplateID)

	wordCount := brief.WordCount
	if wordCount <= 0 {
		wordCount = 500
	}

	metrics.IncGenerationStarted()
	requestID := requestIDFromContext(ctx)
	telemetry.Info("generation.status", map[string]any{
		"request_id": requestID,
		"brief_id":   brief.ID,
		"model":      model,
		"status":     "started",
	})

	start := time.Now()
	var text string
	callErr := s.Retry.Do(ctx, func(ctx context.Context) error {
		out, err := s.LLM.Complete(ctx, llm.CompletionRequest{
			Model:        model,
			SystemPrompt: prompts.SystemPrompt,
			UserPrompt:   prompts.UserPrompt,
			MaxTokens:    wordCount * 3,
			Temperature:  defaultTemperature,
		})
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	elapsed := time.Since(start)

	if callErr != nil {
		if errors.Is(callErr, context.Canceled) {
			return content.Content{}, callErr
		}
		code, _ := classifyFailure(callErr)
		telemetry.Error("generation.provider_failed", map[string]any{
			"request_id": requestID,
			"brief_id":   brief.ID,
			"model":      model,
			"code":       code,
			"error":      sanitizeError(callErr),
		})
		metrics.IncGenerationFailed()
		text = placeholderContent(brief.Topic, callErr)
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata["error"] = sanitizeError(callErr)
		metadata["error_code"] = code
	} else {
		metrics.IncGenerationCompleted()
	}
	metrics.ObserveGenerationDurationMs(float64(elapsed.Microseconds()) / 1000.0)

	item := content.Content{
		ID:               uuid.NewString(),
		BriefID:          brief.ID,
		GeneratedText:    text,
		NeedsReview:      true,
		DeliveryStatus:   content.StatusPending,
		ModelUsed:        model,
		GenerationTimeMs: elapsed.Milliseconds(),
		Metadata:         metadata,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Contents.Create(ctx, item); err != nil {
		return content.Content{}, fmt.Errorf("save content: %w", err)
	}

	telemetry.Info("generation.status", map[string]any{
		"request_id":  requestID,
		"brief_id":    brief.ID,
		"content_id":  item.ID,
		"model":       model,
		"status":      "persisted",
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		"failed":      callErr != nil,
	})
	return item, nil
}

// GenerateForBrief looks the brief up and generates for it.
func (s *Service) GenerateForBrief(ctx context.Context, briefID string, opts Options) (content.Content, error) {
	brief, err := s.Briefs.Get(ctx, briefID)
	if err != nil {
		return content.Content{}, err
	}
	return s.Generate(ctx, brief, opts)
}

// buildPrompts renders the requested template, or falls back to the default
// prompt pair when none is requested or the template is missing.
func (s *Service) buildPrompts(ctx context.Context, brief briefs.Brief, templateID string) (templates.Rendered, map[string]any) {
	params := templates.StandardParams(
		brief.Topic,
		brief.Tone,
		brief.TargetAudience,
		brief.WordCount,
		brief.BriefText,
		brief.Industry,
		brief.ContentType,
	)

	if templateID == "" {
		return templates.DefaultPrompts(params), nil
	}

	tpl, err := s.Templates.Get(ctx, templateID)
	if err != nil {
		telemetry.Warn("generation.template_fallback", map[string]any{
			"brief_id":    brief.ID,
			"template_id": templateID,
			"error":       sanitizeError(err),
		})
		return templates.DefaultPrompts(params), nil
	}

	metadata := map[string]any{
		"template_id":   tpl.ID,
		"template_name": tpl.Name,
	}
	return templates.Render(tpl, params), metadata
}

// ProcessBrief runs the full pipeline for a paid brief: generation, the
// quality pass, delivery when the gate clears, and the brief status
// bookkeeping around it.
func (s *Service) ProcessBrief(ctx context.Context, briefID string) error {
	requestID := requestIDFromContext(ctx)
	start := time.Now()

	brief, err := s.Briefs.Get(ctx, briefID)
	if err != nil {
		return err
	}
	if err := s.Briefs.Advance(ctx, briefID, briefs.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set processing: %w", err)
	}
	telemetry.Info("generation.status", map[string]any{
		"request_id":        requestID,
		"brief_id":          briefID,
		"status":            briefs.StatusProcessing,
		"status_transition": brief.Status + "->" + briefs.StatusProcessing,
	})

	item, err := s.Generate(ctx, brief, Options{})
	if err != nil {
		s.failBrief(ctx, briefID, err)
		return err
	}

	disposition := s.qualityPass(ctx, &item)

	if disposition == quality.DispositionReady {
		if ok := s.Content.Deliver(ctx, item); !ok {
			telemetry.Warn("generation.delivery_deferred", map[string]any{
				"request_id": requestID,
				"brief_id":   briefID,
				"content_id": item.ID,
			})
		}
	}

	if err := s.Briefs.Advance(ctx, briefID, briefs.StatusCompleted, ""); err != nil {
		s.failBrief(ctx, briefID, err)
		return err
	}
	telemetry.Info("generation.status", map[string]any{
		"request_id":        requestID,
		"brief_id":          briefID,
		"content_id":        item.ID,
		"status":            briefs.StatusCompleted,
		"status_transition": briefs.StatusProcessing + "->" + briefs.StatusCompleted,
		"duration_ms":       float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return nil
}

// qualityPass scores the content and records the outcome. Content enters the
// world unreviewed; only a passing assessment clears the flag.
func (s *Service) qualityPass(ctx context.Context, item *content.Content) string {
	if s.Gate == nil {
		return content.StatusReviewNeeded
	}
	assessment := s.Gate.Assess(ctx, item.GeneratedText)
	needsReview := assessment.Disposition == quality.DispositionReviewNeeded

	if err := s.Contents.SetQuality(ctx, item.ID, assessment.Overall, needsReview, assessment.Disposition); err != nil {
		telemetry.Error("generation.quality_persist_failed", map[string]any{
			"content_id": item.ID,
			"error":      sanitizeError(err),
		})
		return content.StatusReviewNeeded
	}
	score := assessment.Overall
	item.QualityScore = &score
	item.NeedsReview = needsReview
	item.DeliveryStatus = assessment.Disposition

	telemetry.Info("generation.quality", map[string]any{
		"content_id":  item.ID,
		"overall":     assessment.Overall,
		"grammar":     assessment.Grammar,
		"coherence":   assessment.Coherence,
		"disposition": assessment.Disposition,
	})
	return assessment.Disposition
}

func (s *Service) failBrief(ctx context.Context, briefID string, cause error) {
	code, _ := classifyFailure(cause)
	reason := code + ": " + sanitizeError(cause)
	if err := s.Briefs.Advance(context.WithoutCancel(ctx), briefID, briefs.StatusFailed, reason); err != nil {
		telemetry.Error("generation.fail_status_update", map[string]any{
			"brief_id": briefID,
			"error":    sanitizeError(err),
		})
	}
	metrics.IncGenerationFailed()
	telemetry.Info("generation.status", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"brief_id":   briefID,
		"status":     briefs.StatusFailed,
		"reason":     reason,
	})
}

func placeholderContent(topic string, err error) string {
	if topic == "" {
		topic = "Unknown Topic"
	}
	return fmt.Sprintf("# Error: %s\n\nPlaceholder content due to error: %s", topic, sanitizeError(err))
}
