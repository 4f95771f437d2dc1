package templates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateParams carries the fields for a new template.
type CreateParams struct {
	Name               string
	Description        string
	SystemPrompt       string
	UserPromptTemplate string
	ContentType        string
	Industry           string
}

// UpdateParams carries optional field updates; nil means leave unchanged.
type UpdateParams struct {
	Name               *string
	Description        *string
	SystemPrompt       *string
	UserPromptTemplate *string
	ContentType        *string
	Industry           *string
}

// Service contains business logic for prompt templates.
type Service struct {
	Repo Repo
}

// Create validates and persists a new template.
func (s *Service) Create(ctx context.Context, params CreateParams) (Template, error) {
	if strings.TrimSpace(params.Name) == "" {
		return Template{}, errors.New("validation: template name is required")
	}
	if strings.TrimSpace(params.SystemPrompt) == "" || strings.TrimSpace(params.UserPromptTemplate) == "" {
		return Template{}, errors.New("validation: system prompt and user prompt template are required")
	}
	if strings.TrimSpace(params.ContentType) == "" {
		return Template{}, errors.New("validation: content type is required")
	}

	now := time.Now().UTC()
	tpl := Template{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(params.Name),
		Description:        strings.TrimSpace(params.Description),
		SystemPrompt:       params.SystemPrompt,
		UserPromptTemplate: params.UserPromptTemplate,
		ContentType:        strings.ToLower(strings.TrimSpace(params.ContentType)),
		Industry:           strings.ToLower(strings.TrimSpace(params.Industry)),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Create(ctx, tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// Get returns a template by ID.
func (s *Service) Get(ctx context.Context, templateID string) (Template, error) {
	if templateID == "" {
		return Template{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, templateID)
}

// GetByName returns a template by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (Template, error) {
	if strings.TrimSpace(name) == "" {
		return Template{}, ErrNotFound
	}
	return s.Repo.GetByName(ctx, name)
}

// List returns templates filtered by content type and industry when given.
func (s *Service) List(ctx context.Context, contentType, industry string) ([]Template, error) {
	return s.Repo.List(ctx, strings.ToLower(contentType), strings.ToLower(industry))
}

// Update applies partial updates to an existing template.
func (s *Service) Update(ctx context.Context, templateID string, params UpdateParams) (Template, error) {
	tpl, err := s.Repo.GetByID(ctx, templateID)
	if err != nil {
		return Template{}, err
	}
	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return Template{}, errors.New("validation: template name must not be empty")
		}
		tpl.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		tpl.Description = strings.TrimSpace(*params.Description)
	}
	if params.SystemPrompt != nil {
		tpl.SystemPrompt = *params.SystemPrompt
	}
	if params.UserPromptTemplate != nil {
		tpl.UserPromptTemplate = *params.UserPromptTemplate
	}
	if params.ContentType != nil {
		tpl.ContentType = strings.ToLower(strings.TrimSpace(*params.ContentType))
	}
	if params.Industry != nil {
		tpl.Industry = strings.ToLower(strings.TrimSpace(*params.Industry))
	}
	tpl.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, templateID string) error {
	return s.Repo.Delete(ctx, templateID)
}

// RenderByID renders a template with the given params.
func (s *Service) RenderByID(ctx context.Context, templateID string, params map[string]string) (Rendered, error) {
	tpl, err := s.Repo.GetByID(ctx, templateID)
	if err != nil {
		return Rendered{}, err
	}
	return Render(tpl, params), nil
}

// BestTemplate picks the template for a content type, preferring an exact
// industry match and falling back to a generic one with no industry set.
func (s *Service) BestTemplate(ctx context.Context, contentType, industry string) (Template, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	industry = strings.ToLower(strings.TrimSpace(industry))

	candidates, err := s.Repo.List(ctx, contentType, "")
	if err != nil {
		return Template{}, err
	}
	if industry != "" {
		for _, tpl := range candidates {
			if tpl.Industry == industry {
				return tpl, nil
			}
		}
	}
	for _, tpl := range candidates {
		if tpl.Industry == "" {
			return tpl, nil
		}
	}
	return Template{}, ErrNotFound
}
