package content

// Delivery statuses. Delivered and rejected are terminal.
const (
	StatusPending          = "pending"
	StatusReviewNeeded     = "review_needed"
	StatusReadyForDelivery = "ready_for_delivery"
	StatusDelivered        = "delivered"
	StatusRejected         = "rejected"
)

var allowedTransitions = map[string][]string{
	StatusPending:          {StatusReviewNeeded, StatusReadyForDelivery},
	StatusReviewNeeded:     {StatusReadyForDelivery, StatusRejected},
	StatusReadyForDelivery: {StatusDelivered, StatusRejected},
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
