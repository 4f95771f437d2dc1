package experiments

import (
	"context"
	"time"
)

// Repo defines persistence operations for experiments. Create stores the
// experiment and all of its variants atomically.
type Repo interface {
	Create(ctx context.Context, exp Experiment, variants []Variant) error
	GetByID(ctx context.Context, experimentID string) (Experiment, error)
	Variants(ctx context.Context, experimentID string) ([]Variant, error)
	List(ctx context.Context, briefID string) ([]Experiment, error)
	Complete(ctx context.Context, experimentID string, winnerIndex int, metrics map[string]any, completedAt time.Time) error
}
