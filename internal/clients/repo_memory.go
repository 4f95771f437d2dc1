package clients

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo stores clients in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Client
	byEmail map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Client),
		byEmail: make(map[string]string),
	}
}

// Create stores the client.
func (r *MemoryRepo) Create(ctx context.Context, client Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[client.ID] = client
	r.byEmail[normalizeEmail(client.Email)] = client.ID
	return nil
}

// GetByID returns a client by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, clientID string) (Client, error) {
	if err := ctx.Err(); err != nil {
		return Client{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.byID[clientID]
	if !ok {
		return Client{}, ErrNotFound
	}
	return client, nil
}

// GetByEmail returns a client by email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Client, error) {
	if err := ctx.Err(); err != nil {
		return Client{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return Client{}, ErrNotFound
	}
	return r.byID[id], nil
}

// List returns all clients, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Client, 0, len(r.byID))
	for _, client := range r.byID {
		out = append(out, client)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
