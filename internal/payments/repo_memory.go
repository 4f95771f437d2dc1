package payments

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores payments in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Payment
	byRef map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:  make(map[string]Payment),
		byRef: make(map[string]string),
	}
}

// Create stores the payment.
func (r *MemoryRepo) Create(ctx context.Context, payment Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[payment.ID] = payment
	if payment.ProviderRef != "" {
		r.byRef[payment.ProviderRef] = payment.ID
	}
	return nil
}

// GetByProviderRef returns a payment by its provider reference.
func (r *MemoryRepo) GetByProviderRef(ctx context.Context, providerRef string) (Payment, error) {
	if err := ctx.Err(); err != nil {
		return Payment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byRef[providerRef]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return r.byID[id], nil
}

// ListByBrief returns a brief's payments, newest first.
func (r *MemoryRepo) ListByBrief(ctx context.Context, briefID string) ([]Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Payment
	for _, p := range r.byID {
		if p.BriefID == briefID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus sets the payment status.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, paymentID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[paymentID]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	r.byID[paymentID] = p
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
