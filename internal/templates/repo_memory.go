package templates

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo stores templates in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Template
	byName map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Template),
		byName: make(map[string]string),
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create stores the template, enforcing name uniqueness.
func (r *MemoryRepo) Create(ctx context.Context, tpl Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeName(tpl.Name)
	if _, taken := r.byName[key]; taken {
		return ErrNameTaken
	}
	r.byID[tpl.ID] = tpl
	r.byName[key] = tpl.ID
	return nil
}

// GetByID returns a template by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, templateID string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.byID[templateID]
	if !ok {
		return Template{}, ErrNotFound
	}
	return tpl, nil
}

// GetByName returns a template by its unique name.
func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[normalizeName(name)]
	if !ok {
		return Template{}, ErrNotFound
	}
	return r.byID[id], nil
}

// List returns templates filtered by content type and industry when given.
func (r *MemoryRepo) List(ctx context.Context, contentType, industry string) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.byID))
	for _, tpl := range r.byID {
		if contentType != "" && tpl.ContentType != contentType {
			continue
		}
		if industry != "" && tpl.Industry != industry {
			continue
		}
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update replaces an existing template, keeping the name index consistent.
func (r *MemoryRepo) Update(ctx context.Context, tpl Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[tpl.ID]
	if !ok {
		return ErrNotFound
	}
	newKey := normalizeName(tpl.Name)
	oldKey := normalizeName(existing.Name)
	if newKey != oldKey {
		if _, taken := r.byName[newKey]; taken {
			return ErrNameTaken
		}
		delete(r.byName, oldKey)
		r.byName[newKey] = tpl.ID
	}
	r.byID[tpl.ID] = tpl
	return nil
}

// Delete removes a template.
func (r *MemoryRepo) Delete(ctx context.Context, templateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tpl, ok := r.byID[templateID]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, templateID)
	delete(r.byName, normalizeName(tpl.Name))
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
