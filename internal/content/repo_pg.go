package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const contentColumns = `id, brief_id, variant_id, generated_text, quality_score, needs_review,
       delivery_status, model_used, generation_time_ms, generation_metadata, feedback, created_at`

// Create inserts a new content row.
func (r *PGRepo) Create(ctx context.Context, item Content) error {
	const query = `
INSERT INTO contents (id, brief_id, variant_id, generated_text, quality_score, needs_review,
                      delivery_status, model_used, generation_time_ms, generation_metadata, feedback, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		item.ID,
		item.BriefID,
		nullIfEmpty(item.VariantID),
		item.GeneratedText,
		item.QualityScore,
		item.NeedsReview,
		item.DeliveryStatus,
		item.ModelUsed,
		item.GenerationTimeMs,
		metadata,
		nullIfEmpty(item.Feedback),
		item.CreatedAt,
	)
	return err
}

// GetByID returns a content row by ID.
func (r *PGRepo) GetByID(ctx context.Context, contentID string) (Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1 LIMIT 1`
	item, err := scanContent(r.DB.QueryRowContext(ctx, query, contentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Content{}, ErrNotFound
		}
		return Content{}, err
	}
	return item, nil
}

// ListByBrief returns all content for a brief, newest first.
func (r *PGRepo) ListByBrief(ctx context.Context, briefID string) ([]Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE brief_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, briefID)
}

// LatestByBrief returns the newest content row for a brief.
func (r *PGRepo) LatestByBrief(ctx context.Context, briefID string) (Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE brief_id = $1 ORDER BY created_at DESC LIMIT 1`
	item, err := scanContent(r.DB.QueryRowContext(ctx, query, briefID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Content{}, ErrNotFound
		}
		return Content{}, err
	}
	return item, nil
}

// List returns content rows, newest first, with optional filters.
func (r *PGRepo) List(ctx context.Context, deliveryStatus string, needsReview *bool, limit, offset int) ([]Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE 1=1`
	var args []any
	if deliveryStatus != "" {
		args = append(args, deliveryStatus)
		query += ` AND delivery_status = $1`
	}
	if needsReview != nil {
		args = append(args, *needsReview)
		query += ` AND needs_review = $` + strconv.Itoa(len(args))
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	return r.queryMany(ctx, query, args...)
}

// SetQuality records the quality outcome. The score is written once; a second
// write is rejected with ErrQualityAlreadySet.
func (r *PGRepo) SetQuality(ctx context.Context, contentID string, score float64, needsReview bool, deliveryStatus string) error {
	const query = `
UPDATE contents
SET quality_score = $2, needs_review = $3, delivery_status = $4
WHERE id = $1 AND quality_score IS NULL`
	res, err := r.DB.ExecContext(ctx, query, contentID, score, needsReview, deliveryStatus)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, getErr := r.GetByID(ctx, contentID); getErr != nil {
			return getErr
		}
		return ErrQualityAlreadySet
	}
	return nil
}

// SetVariant links the content row to an experiment variant. Set once.
func (r *PGRepo) SetVariant(ctx context.Context, contentID, variantID string) error {
	const query = `UPDATE contents SET variant_id = $2 WHERE id = $1 AND variant_id IS NULL`
	res, err := r.DB.ExecContext(ctx, query, contentID, variantID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, getErr := r.GetByID(ctx, contentID); getErr != nil {
			return getErr
		}
		return ErrVariantAlreadySet
	}
	return nil
}

// UpdateDeliveryStatus moves the row to a new delivery status.
func (r *PGRepo) UpdateDeliveryStatus(ctx context.Context, contentID, status, feedback string, needsReview bool) error {
	const query = `
UPDATE contents
SET delivery_status = $2, needs_review = $3,
    feedback = COALESCE(NULLIF($4, ''), feedback)
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, contentID, status, needsReview, feedback)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UsageRecords returns the template-usage slice of every row.
func (r *PGRepo) UsageRecords(ctx context.Context) ([]UsageRecord, error) {
	const query = `SELECT quality_score, generation_metadata FROM contents`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UsageRecord
	for rows.Next() {
		var score sql.NullFloat64
		var rawMetadata []byte
		if err := rows.Scan(&score, &rawMetadata); err != nil {
			return nil, err
		}
		item := Content{}
		if score.Valid {
			v := score.Float64
			item.QualityScore = &v
		}
		if len(rawMetadata) > 0 {
			_ = json.Unmarshal(rawMetadata, &item.Metadata)
		}
		out = append(out, usageRecordOf(item))
	}
	return out, rows.Err()
}

func (r *PGRepo) queryMany(ctx context.Context, query string, args ...any) ([]Content, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Content
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (Content, error) {
	var item Content
	var variantID, feedback sql.NullString
	var score sql.NullFloat64
	var genTime sql.NullInt64
	var rawMetadata []byte
	if err := row.Scan(
		&item.ID,
		&item.BriefID,
		&variantID,
		&item.GeneratedText,
		&score,
		&item.NeedsReview,
		&item.DeliveryStatus,
		&item.ModelUsed,
		&genTime,
		&rawMetadata,
		&feedback,
		&item.CreatedAt,
	); err != nil {
		return Content{}, err
	}
	item.VariantID = variantID.String
	item.Feedback = feedback.String
	item.GenerationTimeMs = genTime.Int64
	if score.Valid {
		v := score.Float64
		item.QualityScore = &v
	}
	if len(rawMetadata) > 0 {
		if err := json.Unmarshal(rawMetadata, &item.Metadata); err != nil {
			return Content{}, err
		}
	}
	return item, nil
}

func marshalMetadata(metadata map[string]any) (any, error) {
	if metadata == nil {
		return nil, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
