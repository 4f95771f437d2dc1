package content

import "context"

// Repo defines persistence operations for generated content.
type Repo interface {
	Create(ctx context.Context, item Content) error
	GetByID(ctx context.Context, contentID string) (Content, error)
	ListByBrief(ctx context.Context, briefID string) ([]Content, error)
	LatestByBrief(ctx context.Context, briefID string) (Content, error)
	List(ctx context.Context, deliveryStatus string, needsReview *bool, limit, offset int) ([]Content, error)
	SetQuality(ctx context.Context, contentID string, score float64, needsReview bool, deliveryStatus string) error
	SetVariant(ctx context.Context, contentID, variantID string) error
	UpdateDeliveryStatus(ctx context.Context, contentID, status, feedback string, needsReview bool) error
	UsageRecords(ctx context.Context) ([]UsageRecord, error)
}
