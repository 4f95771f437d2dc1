package briefs

import "time"

// Brief captures a client's content request parameters.
//
// The request parameters are immutable after submission; only status and
// status reason advance over the brief's lifetime.
type Brief struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId"`
	BriefText      string    `json:"briefText"`
	Topic          string    `json:"topic"`
	Tone           string    `json:"tone"`
	TargetAudience string    `json:"targetAudience"`
	WordCount      int       `json:"wordCount"`
	BudgetTier     string    `json:"budgetTier"`
	Status         string    `json:"status"`
	StatusReason   string    `json:"statusReason,omitempty"`
	Industry       string    `json:"industry"`
	ContentType    string    `json:"contentType"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
