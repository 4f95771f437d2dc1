package templates

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const templateColumns = `id, name, description, system_prompt, user_prompt_template, content_type, industry, created_at, updated_at`

// Create inserts a new template. Name collisions surface as ErrNameTaken.
func (r *PGRepo) Create(ctx context.Context, tpl Template) error {
	const query = `
INSERT INTO content_templates (id, name, description, system_prompt, user_prompt_template, content_type, industry, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		tpl.ID,
		tpl.Name,
		nullIfEmpty(tpl.Description),
		tpl.SystemPrompt,
		tpl.UserPromptTemplate,
		tpl.ContentType,
		nullIfEmpty(tpl.Industry),
		tpl.CreatedAt,
		tpl.UpdatedAt,
	)
	return mapNameConflict(err)
}

// GetByID returns a template by ID.
func (r *PGRepo) GetByID(ctx context.Context, templateID string) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM content_templates WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, templateID))
}

// GetByName returns a template by its unique name.
func (r *PGRepo) GetByName(ctx context.Context, name string) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM content_templates WHERE lower(name) = lower($1) LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

// List returns templates filtered by content type and industry when given.
func (r *PGRepo) List(ctx context.Context, contentType, industry string) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM content_templates`
	var conds []string
	var args []any
	if contentType != "" {
		args = append(args, contentType)
		conds = append(conds, "content_type = $1")
	}
	if industry != "" {
		args = append(args, industry)
		if len(args) == 1 {
			conds = append(conds, "industry = $1")
		} else {
			conds = append(conds, "industry = $2")
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, rows.Err()
}

// Update replaces an existing template.
func (r *PGRepo) Update(ctx context.Context, tpl Template) error {
	const query = `
UPDATE content_templates
SET name = $2, description = $3, system_prompt = $4, user_prompt_template = $5,
    content_type = $6, industry = $7, updated_at = $8
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		tpl.ID,
		tpl.Name,
		nullIfEmpty(tpl.Description),
		tpl.SystemPrompt,
		tpl.UserPromptTemplate,
		tpl.ContentType,
		nullIfEmpty(tpl.Industry),
		tpl.UpdatedAt,
	)
	if err != nil {
		return mapNameConflict(err)
	}
	return requireAffected(res)
}

// Delete removes a template.
func (r *PGRepo) Delete(ctx context.Context, templateID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM content_templates WHERE id = $1`, templateID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) scanOne(row *sql.Row) (Template, error) {
	tpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return tpl, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (Template, error) {
	var tpl Template
	var description, industry sql.NullString
	if err := row.Scan(
		&tpl.ID,
		&tpl.Name,
		&description,
		&tpl.SystemPrompt,
		&tpl.UserPromptTemplate,
		&tpl.ContentType,
		&industry,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	); err != nil {
		return Template{}, err
	}
	tpl.Description = description.String
	tpl.Industry = industry.String
	return tpl, nil
}

func mapNameConflict(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key") {
		return ErrNameTaken
	}
	return err
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
