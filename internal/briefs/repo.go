package briefs

import "context"

// Repo defines persistence operations for briefs.
type Repo interface {
	Create(ctx context.Context, brief Brief) error
	GetByID(ctx context.Context, briefID string) (Brief, error)
	List(ctx context.Context, status string, limit, offset int) ([]Brief, error)
	UpdateStatus(ctx context.Context, briefID, status, reason string) error
}
