package briefs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new brief.
func (r *PGRepo) Create(ctx context.Context, brief Brief) error {
	const query = `
INSERT INTO briefs (
	id, client_id, brief_text, topic, tone, target_audience, word_count,
	budget_tier, status, status_reason, industry, content_type, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.ExecContext(ctx, query,
		brief.ID,
		brief.ClientID,
		brief.BriefText,
		brief.Topic,
		brief.Tone,
		brief.TargetAudience,
		brief.WordCount,
		brief.BudgetTier,
		brief.Status,
		nullIfEmpty(brief.StatusReason),
		brief.Industry,
		brief.ContentType,
		brief.CreatedAt,
		brief.UpdatedAt,
	)
	return err
}

// GetByID returns a brief by ID.
func (r *PGRepo) GetByID(ctx context.Context, briefID string) (Brief, error) {
	const query = `
SELECT id, client_id, brief_text, topic, tone, target_audience, word_count,
       budget_tier, status, status_reason, industry, content_type, created_at, updated_at
FROM briefs
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, briefID)
	brief, err := scanBrief(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Brief{}, ErrNotFound
		}
		return Brief{}, err
	}
	return brief, nil
}

// List returns briefs, newest first, optionally filtered by status.
func (r *PGRepo) List(ctx context.Context, status string, limit, offset int) ([]Brief, error) {
	const base = `
SELECT id, client_id, brief_text, topic, tone, target_audience, word_count,
       budget_tier, status, status_reason, industry, content_type, created_at, updated_at
FROM briefs`
	query := base + `
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	args := []any{normalizeLimit(limit), maxInt(offset, 0)}
	if status != "" {
		query = base + `
WHERE status = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
		args = append(args, status)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Brief
	for rows.Next() {
		brief, err := scanBrief(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, brief)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status and reason for an existing brief.
func (r *PGRepo) UpdateStatus(ctx context.Context, briefID, status, reason string) error {
	const query = `
UPDATE briefs SET status = $2, status_reason = $3, updated_at = $4 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, briefID, status, nullIfEmpty(reason), time.Now().UTC())
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrief(row rowScanner) (Brief, error) {
	var b Brief
	var topic, tone, audience, reason, industry, contentType sql.NullString
	var wordCount sql.NullInt64
	if err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.BriefText,
		&topic,
		&tone,
		&audience,
		&wordCount,
		&b.BudgetTier,
		&b.Status,
		&reason,
		&industry,
		&contentType,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return Brief{}, err
	}
	b.Topic = topic.String
	b.Tone = tone.String
	b.TargetAudience = audience.String
	b.WordCount = int(wordCount.Int64)
	b.StatusReason = reason.String
	b.Industry = industry.String
	b.ContentType = contentType.String
	return b, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ Repo = (*PGRepo)(nil)
