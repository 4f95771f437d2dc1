package clients

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new client.
func (r *PGRepo) Create(ctx context.Context, client Client) error {
	const query = `
INSERT INTO clients (id, name, email, created_at)
VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query, client.ID, client.Name, client.Email, client.CreatedAt)
	return err
}

// GetByID returns a client by ID.
func (r *PGRepo) GetByID(ctx context.Context, clientID string) (Client, error) {
	const query = `
SELECT id, name, email, created_at FROM clients WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, clientID))
}

// GetByEmail returns a client by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Client, error) {
	const query = `
SELECT id, name, email, created_at FROM clients WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// List returns all clients, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Client, error) {
	const query = `
SELECT id, name, email, created_at FROM clients ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Client, error) {
	var c Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return c, nil
}

var _ Repo = (*PGRepo)(nil)
