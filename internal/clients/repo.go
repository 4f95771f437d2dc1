package clients

import "context"

// Repo defines persistence operations for clients.
type Repo interface {
	Create(ctx context.Context, client Client) error
	GetByID(ctx context.Context, clientID string) (Client, error)
	GetByEmail(ctx context.Context, email string) (Client, error)
	List(ctx context.Context) ([]Client, error)
}
