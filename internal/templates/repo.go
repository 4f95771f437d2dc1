package templates

import "context"

// Repo defines persistence operations for templates. Create and Update must
// enforce name uniqueness with ErrNameTaken.
type Repo interface {
	Create(ctx context.Context, tpl Template) error
	GetByID(ctx context.Context, templateID string) (Template, error)
	GetByName(ctx context.Context, name string) (Template, error)
	List(ctx context.Context, contentType, industry string) ([]Template, error)
	Update(ctx context.Context, tpl Template) error
	Delete(ctx context.Context, templateID string) error
}
