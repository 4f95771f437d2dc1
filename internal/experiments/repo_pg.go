package experiments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts the experiment and its variants in one transaction.
func (r *PGRepo) Create(ctx context.Context, exp Experiment, variants []Variant) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	metrics, err := marshalMetrics(exp.Metrics)
	if err != nil {
		return err
	}
	const expQuery = `
INSERT INTO experiments (id, brief_id, status, winner_index, metrics, created_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, expQuery,
		exp.ID, exp.BriefID, exp.Status, exp.WinnerIndex, metrics, exp.CreatedAt, exp.CompletedAt,
	); err != nil {
		return err
	}

	const variantQuery = `
INSERT INTO experiment_variants (id, experiment_id, variant_index, model, template_id, weight, content_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, v := range variants {
		if _, err := tx.ExecContext(ctx, variantQuery,
			v.ID, v.ExperimentID, v.VariantIndex, nullIfEmpty(v.Model), nullIfEmpty(v.TemplateID), v.Weight, v.ContentID, v.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByID returns an experiment by ID.
func (r *PGRepo) GetByID(ctx context.Context, experimentID string) (Experiment, error) {
	const query = `
SELECT id, brief_id, status, winner_index, metrics, created_at, completed_at
FROM experiments WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, experimentID)

	var exp Experiment
	var winner sql.NullInt64
	var rawMetrics []byte
	var completedAt sql.NullTime
	if err := row.Scan(&exp.ID, &exp.BriefID, &exp.Status, &winner, &rawMetrics, &exp.CreatedAt, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Experiment{}, ErrNotFound
		}
		return Experiment{}, err
	}
	if winner.Valid {
		idx := int(winner.Int64)
		exp.WinnerIndex = &idx
	}
	if completedAt.Valid {
		t := completedAt.Time
		exp.CompletedAt = &t
	}
	if len(rawMetrics) > 0 {
		if err := json.Unmarshal(rawMetrics, &exp.Metrics); err != nil {
			return Experiment{}, err
		}
	}
	return exp, nil
}

// Variants returns the experiment's variants in index order.
func (r *PGRepo) Variants(ctx context.Context, experimentID string) ([]Variant, error) {
	const query = `
SELECT id, experiment_id, variant_index, model, template_id, weight, content_id, created_at
FROM experiment_variants
WHERE experiment_id = $1
ORDER BY variant_index ASC`
	rows, err := r.DB.QueryContext(ctx, query, experimentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Variant
	for rows.Next() {
		var v Variant
		var model, templateID sql.NullString
		if err := rows.Scan(&v.ID, &v.ExperimentID, &v.VariantIndex, &model, &templateID, &v.Weight, &v.ContentID, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Model = model.String
		v.TemplateID = templateID.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// List returns experiments, newest first, optionally for one brief.
func (r *PGRepo) List(ctx context.Context, briefID string) ([]Experiment, error) {
	query := `
SELECT id, brief_id, status, winner_index, metrics, created_at, completed_at
FROM experiments`
	var args []any
	if briefID != "" {
		query += ` WHERE brief_id = $1`
		args = append(args, briefID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Experiment
	for rows.Next() {
		var exp Experiment
		var winner sql.NullInt64
		var rawMetrics []byte
		var completedAt sql.NullTime
		if err := rows.Scan(&exp.ID, &exp.BriefID, &exp.Status, &winner, &rawMetrics, &exp.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		if winner.Valid {
			idx := int(winner.Int64)
			exp.WinnerIndex = &idx
		}
		if completedAt.Valid {
			t := completedAt.Time
			exp.CompletedAt = &t
		}
		if len(rawMetrics) > 0 {
			_ = json.Unmarshal(rawMetrics, &exp.Metrics)
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

// Complete freezes the winner and metrics.
func (r *PGRepo) Complete(ctx context.Context, experimentID string, winnerIndex int, metrics map[string]any, completedAt time.Time) error {
	raw, err := marshalMetrics(metrics)
	if err != nil {
		return err
	}
	const query = `
UPDATE experiments
SET status = $2, winner_index = $3, metrics = $4, completed_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, experimentID, StatusCompleted, winnerIndex, raw, completedAt)
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

func marshalMetrics(metrics map[string]any) (any, error) {
	if metrics == nil {
		return nil, nil
	}
	return json.Marshal(metrics)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
