package payments

import "time"

// Payment statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Payment records one charge attempt for a brief.
type Payment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	BriefID     string    `json:"briefId"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ProviderRef string    `json:"providerRef"`
	CreatedAt   time.Time `json:"createdAt"`
}
