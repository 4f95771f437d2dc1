package experiments

import "time"

// Experiment statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Experiment is an A/B test over generation settings for one brief.
type Experiment struct {
	ID          string         `json:"id"`
	BriefID     string         `json:"briefId"`
	Status      string         `json:"status"`
	WinnerIndex *int           `json:"winnerIndex,omitempty"`
	Metrics     map[string]any `json:"metrics,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// Variant is one arm of an experiment, linked to the content it produced.
type Variant struct {
	ID           string    `json:"id"`
	ExperimentID string    `json:"experimentId"`
	VariantIndex int       `json:"variantIndex"`
	Model        string    `json:"model,omitempty"`
	TemplateID   string    `json:"templateId,omitempty"`
	Weight       float64   `json:"weight,omitempty"`
	ContentID    string    `json:"contentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VariantSpec is the requested configuration for one arm. Weight is
// descriptive metadata only; it does not influence generation.
type VariantSpec struct {
	Model      string  `json:"model"`
	TemplateID string  `json:"templateId"`
	Weight     float64 `json:"weight"`
}

// VariantResult is one arm's outcome in a results report. IsWinner stays nil
// until a winner has been selected.
type VariantResult struct {
	VariantIndex     int    `json:"variantIndex"`
	ContentID        string `json:"contentId"`
	ModelUsed        string `json:"modelUsed"`
	TemplateID       string `json:"templateId,omitempty"`
	GenerationTimeMs int64  `json:"generationTimeMs"`
	NeedsReview      bool   `json:"needsReview"`
	IsWinner         *bool  `json:"isWinner"`
}

// Results is the full report for an experiment.
type Results struct {
	TestID      string          `json:"testId"`
	BriefID     string          `json:"briefId"`
	Status      string          `json:"status"`
	Variants    []VariantResult `json:"variants"`
	WinnerIndex *int            `json:"winnerIndex,omitempty"`
	Metrics     map[string]any  `json:"metrics"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}
