package payments

import "context"

// Repo defines persistence operations for payments.
type Repo interface {
	Create(ctx context.Context, payment Payment) error
	GetByProviderRef(ctx context.Context, providerRef string) (Payment, error)
	ListByBrief(ctx context.Context, briefID string) ([]Payment, error)
	UpdateStatus(ctx context.Context, paymentID, status string) error
}
