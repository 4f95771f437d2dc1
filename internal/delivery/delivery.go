package delivery

import "context"

// Deliverer sends finished content to a recipient. The boolean result is a
// best-effort signal; a false return is logged by callers but never fails the
// pipeline.
type Deliverer interface {
	Deliver(ctx context.Context, recipient, subject, text string) bool
}
