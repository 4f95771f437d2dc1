package briefs

// Brief lifecycle statuses. Advancement is monotonic; a retryable failure is
// surfaced as a terminal "failed" with a reason, never a revert to pending.
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var statusRank = map[string]int{
	StatusPending:    0,
	StatusPaid:       1,
	StatusProcessing: 2,
	StatusCompleted:  3,
	StatusFailed:     3,
}

// canAdvance reports whether a brief may move from one status to another.
// Failed and completed are terminal; failed may be entered from any live state.
func canAdvance(from, to string) bool {
	if from == to {
		return true
	}
	if from == StatusCompleted || from == StatusFailed {
		return false
	}
	if to == StatusFailed {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
