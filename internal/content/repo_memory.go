package content

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores content rows in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Content
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Content)}
}

// Create stores the content row.
func (r *MemoryRepo) Create(ctx context.Context, item Content) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

// GetByID returns a content row by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, contentID string) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[contentID]
	if !ok {
		return Content{}, ErrNotFound
	}
	return item, nil
}

// ListByBrief returns all content for a brief, newest first.
func (r *MemoryRepo) ListByBrief(ctx context.Context, briefID string) ([]Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Content
	for _, item := range r.byID {
		if item.BriefID == briefID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// LatestByBrief returns the newest content row for a brief.
func (r *MemoryRepo) LatestByBrief(ctx context.Context, briefID string) (Content, error) {
	items, err := r.ListByBrief(ctx, briefID)
	if err != nil {
		return Content{}, err
	}
	if len(items) == 0 {
		return Content{}, ErrNotFound
	}
	return items[0], nil
}

// List returns content rows, newest first, with optional filters.
func (r *MemoryRepo) List(ctx context.Context, deliveryStatus string, needsReview *bool, limit, offset int) ([]Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var all []Content
	for _, item := range r.byID {
		if deliveryStatus != "" && item.DeliveryStatus != deliveryStatus {
			continue
		}
		if needsReview != nil && item.NeedsReview != *needsReview {
			continue
		}
		all = append(all, item)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []Content{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// SetQuality records the quality outcome. The score is written once.
func (r *MemoryRepo) SetQuality(ctx context.Context, contentID string, score float64, needsReview bool, deliveryStatus string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[contentID]
	if !ok {
		return ErrNotFound
	}
	if item.QualityScore != nil {
		return ErrQualityAlreadySet
	}
	item.QualityScore = &score
	item.NeedsReview = needsReview
	item.DeliveryStatus = deliveryStatus
	r.byID[contentID] = item
	return nil
}

// SetVariant links the content row to an experiment variant. Set once.
func (r *MemoryRepo) SetVariant(ctx context.Context, contentID, variantID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[contentID]
	if !ok {
		return ErrNotFound
	}
	if item.VariantID != "" {
		return ErrVariantAlreadySet
	}
	item.VariantID = variantID
	r.byID[contentID] = item
	return nil
}

// UpdateDeliveryStatus moves the row to a new delivery status.
func (r *MemoryRepo) UpdateDeliveryStatus(ctx context.Context, contentID, status, feedback string, needsReview bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[contentID]
	if !ok {
		return ErrNotFound
	}
	item.DeliveryStatus = status
	item.NeedsReview = needsReview
	if feedback != "" {
		item.Feedback = feedback
	}
	r.byID[contentID] = item
	return nil
}

// UsageRecords returns the template-usage slice of every row.
func (r *MemoryRepo) UsageRecords(ctx context.Context) ([]UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]UsageRecord, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, usageRecordOf(item))
	}
	return out, nil
}

func usageRecordOf(item Content) UsageRecord {
	rec := UsageRecord{QualityScore: item.QualityScore}
	if item.Metadata != nil {
		if id, ok := item.Metadata["template_id"].(string); ok {
			rec.TemplateID = id
		}
		if name, ok := item.Metadata["template_name"].(string); ok {
			rec.TemplateName = name
		}
	}
	return rec
}

var _ Repo = (*MemoryRepo)(nil)
