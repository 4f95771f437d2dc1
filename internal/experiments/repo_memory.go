package experiments

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores experiments in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Experiment
	variants map[string][]Variant
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Experiment),
		variants: make(map[string][]Variant),
	}
}

// Create stores the experiment with its variants.
func (r *MemoryRepo) Create(ctx context.Context, exp Experiment, variants []Variant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[exp.ID] = exp
	stored := make([]Variant, len(variants))
	copy(stored, variants)
	sort.Slice(stored, func(i, j int) bool { return stored[i].VariantIndex < stored[j].VariantIndex })
	r.variants[exp.ID] = stored
	return nil
}

// GetByID returns an experiment by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, experimentID string) (Experiment, error) {
	if err := ctx.Err(); err != nil {
		return Experiment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.byID[experimentID]
	if !ok {
		return Experiment{}, ErrNotFound
	}
	return exp, nil
}

// Variants returns the experiment's variants in index order.
func (r *MemoryRepo) Variants(ctx context.Context, experimentID string) ([]Variant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.byID[experimentID]; !ok {
		return nil, ErrNotFound
	}
	out := make([]Variant, len(r.variants[experimentID]))
	copy(out, r.variants[experimentID])
	return out, nil
}

// List returns experiments, newest first, optionally for one brief.
func (r *MemoryRepo) List(ctx context.Context, briefID string) ([]Experiment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Experiment
	for _, exp := range r.byID {
		if briefID != "" && exp.BriefID != briefID {
			continue
		}
		out = append(out, exp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Complete freezes the winner and metrics.
func (r *MemoryRepo) Complete(ctx context.Context, experimentID string, winnerIndex int, metrics map[string]any, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.byID[experimentID]
	if !ok {
		return ErrNotFound
	}
	exp.Status = StatusCompleted
	exp.WinnerIndex = &winnerIndex
	exp.Metrics = metrics
	exp.CompletedAt = &completedAt
	r.byID[experimentID] = exp
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
