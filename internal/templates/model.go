package templates

import "time"

// Template is a reusable prompt pair for content generation. The user prompt
// carries {placeholder} parameters filled at render time.
type Template struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	SystemPrompt       string    `json:"systemPrompt"`
	UserPromptTemplate string    `json:"userPromptTemplate"`
	ContentType        string    `json:"contentType"`
	Industry           string    `json:"industry,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Rendered is the outcome of substituting params into a template.
type Rendered struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
}
