package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for clients.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// GetOrCreate returns the client with the given email, creating one if missing.
func (s *Service) GetOrCreate(ctx context.Context, email, name string) (Client, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Client{}, errors.New("email is required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Client{}, err
	}

	client := Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, client); err != nil {
		return Client{}, err
	}
	return client, nil
}

// Get returns a client by ID.
func (s *Service) Get(ctx context.Context, clientID string) (Client, error) {
	if clientID == "" {
		return Client{}, errors.New("clientID is required")
	}
	return s.Repo.GetByID(ctx, clientID)
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.Repo.List(ctx)
}
