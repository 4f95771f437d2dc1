package briefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubmitParams carries the fields of an incoming brief submission.
type SubmitParams struct {
	ClientID       string
	BriefText      string
	Topic          string
	Tone           string
	TargetAudience string
	WordCount      int
	BudgetTier     string
	Industry       string
	ContentType    string
}

// Service contains business logic for briefs.
type Service struct {
	Repo Repo
}

// Submit validates and persists a new brief in pending status.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (Brief, error) {
	if params.ClientID == "" {
		return Brief{}, errors.New("validation: client id is required")
	}
	if strings.TrimSpace(params.BriefText) == "" {
		return Brief{}, errors.New("validation: brief text is required")
	}
	if params.WordCount < 0 {
		return Brief{}, errors.New("validation: word count must not be negative")
	}

	now := time.Now().UTC()
	brief := Brief{
		ID:             uuid.NewString(),
		ClientID:       params.ClientID,
		BriefText:      strings.TrimSpace(params.BriefText),
		Topic:          strings.TrimSpace(params.Topic),
		Tone:           strings.TrimSpace(params.Tone),
		TargetAudience: strings.TrimSpace(params.TargetAudience),
		WordCount:      params.WordCount,
		BudgetTier:     normalizeBudgetTier(params.BudgetTier),
		Status:         StatusPending,
		Industry:       strings.ToLower(strings.TrimSpace(params.Industry)),
		ContentType:    strings.ToLower(strings.TrimSpace(params.ContentType)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, brief); err != nil {
		return Brief{}, err
	}
	return brief, nil
}

// Get returns a brief by ID.
func (s *Service) Get(ctx context.Context, briefID string) (Brief, error) {
	if briefID == "" {
		return Brief{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, briefID)
}

// List returns briefs, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]Brief, error) {
	return s.Repo.List(ctx, status, limit, offset)
}

// Advance moves a brief to a later lifecycle status. Moving backwards is
// rejected with ErrStatusRegression; failed carries a cause in reason.
func (s *Service) Advance(ctx context.Context, briefID, status, reason string) error {
	brief, err := s.Repo.GetByID(ctx, briefID)
	if err != nil {
		return err
	}
	if !canAdvance(brief.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrStatusRegression, brief.Status, status)
	}
	if brief.Status == status && brief.StatusReason == reason {
		return nil
	}
	return s.Repo.UpdateStatus(ctx, briefID, status, reason)
}

func normalizeBudgetTier(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "economy":
		return "economy"
	case "premium":
		return "premium"
	default:
		return "standard"
	}
}
