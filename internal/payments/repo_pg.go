package payments

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const paymentColumns = `id, client_id, brief_id, amount, status, provider_ref, created_at`

// Create inserts a new payment.
func (r *PGRepo) Create(ctx context.Context, payment Payment) error {
	const query = `
INSERT INTO payments (id, client_id, brief_id, amount, status, provider_ref, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		payment.ID,
		payment.ClientID,
		payment.BriefID,
		payment.Amount,
		payment.Status,
		payment.ProviderRef,
		payment.CreatedAt,
	)
	return err
}

// GetByProviderRef returns a payment by its provider reference.
func (r *PGRepo) GetByProviderRef(ctx context.Context, providerRef string) (Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE provider_ref = $1 LIMIT 1`
	var p Payment
	err := r.DB.QueryRowContext(ctx, query, providerRef).Scan(
		&p.ID, &p.ClientID, &p.BriefID, &p.Amount, &p.Status, &p.ProviderRef, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

// ListByBrief returns a brief's payments, newest first.
func (r *PGRepo) ListByBrief(ctx context.Context, briefID string) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE brief_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, briefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.BriefID, &p.Amount, &p.Status, &p.ProviderRef, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus sets the payment status.
func (r *PGRepo) UpdateStatus(ctx context.Context, paymentID, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE payments SET status = $2 WHERE id = $1`, paymentID, status)
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

var _ Repo = (*PGRepo)(nil)
