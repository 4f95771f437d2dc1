package briefs

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores briefs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Brief
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Brief)}
}

// Create stores the brief.
func (r *MemoryRepo) Create(ctx context.Context, brief Brief) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[brief.ID] = brief
	return nil
}

// GetByID returns a brief by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, briefID string) (Brief, error) {
	if err := ctx.Err(); err != nil {
		return Brief{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	brief, ok := r.byID[briefID]
	if !ok {
		return Brief{}, ErrNotFound
	}
	return brief, nil
}

// List returns briefs, newest first, optionally filtered by status.
func (r *MemoryRepo) List(ctx context.Context, status string, limit, offset int) ([]Brief, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Brief, 0, len(r.byID))
	for _, b := range r.byID {
		if status != "" && b.Status != status {
			continue
		}
		all = append(all, b)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Brief{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// UpdateStatus sets the status and reason for an existing brief.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, briefID, status, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	brief, ok := r.byID[briefID]
	if !ok {
		return ErrNotFound
	}
	brief.Status = status
	brief.StatusReason = reason
	brief.UpdatedAt = time.Now().UTC()
	r.byID[briefID] = brief
	return nil
}
