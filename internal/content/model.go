package content

import "time"

// Content is one generated result for a brief. Re-generation always creates a
// new row; quality score and variant link are set at most once.
type Content struct {
	ID               string         `json:"id"`
	BriefID          string         `json:"briefId"`
	VariantID        string         `json:"variantId,omitempty"`
	GeneratedText    string         `json:"generatedText"`
	QualityScore     *float64       `json:"qualityScore,omitempty"`
	NeedsReview      bool           `json:"needsReview"`
	DeliveryStatus   string         `json:"deliveryStatus"`
	ModelUsed        string         `json:"modelUsed"`
	GenerationTimeMs int64          `json:"generationTimeMs"`
	Metadata         map[string]any `json:"generationMetadata,omitempty"`
	Feedback         string         `json:"feedback,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// UsageRecord is the per-row slice used for template analytics.
type UsageRecord struct {
	TemplateID   string
	TemplateName string
	QualityScore *float64
}
