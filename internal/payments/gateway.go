package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Intent is an open charge with the payment provider.
type Intent struct {
	Ref    string
	Amount float64
}

// Gateway abstracts the payment provider. The real integration stays behind
// this interface; the dev gateway stands in locally.
type Gateway interface {
	CreateIntent(ctx context.Context, clientID string, amount float64) (Intent, error)
	ConfirmIntent(ctx context.Context, intentRef string) (bool, error)
}

// DevGateway approves everything it issued itself. For local use only.
type DevGateway struct{}

// CreateIntent issues a dev intent reference.
func (DevGateway) CreateIntent(ctx context.Context, clientID string, amount float64) (Intent, error) {
	if err := ctx.Err(); err != nil {
		return Intent{}, err
	}
	return Intent{Ref: "dev_pi_" + uuid.NewString(), Amount: amount}, nil
}

// ConfirmIntent approves any reference the dev gateway issued.
func (DevGateway) ConfirmIntent(ctx context.Context, intentRef string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return strings.HasPrefix(intentRef, "dev_pi_"), nil
}

var _ Gateway = DevGateway{}
