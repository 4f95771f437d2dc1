package generation

// ModelProfile describes one model the selector can pick.
type ModelProfile struct {
	ID        string
	Strengths []string
	CostTier  string
	MaxWords  int
}

// DefaultModel is returned whenever selection cannot do better.
const DefaultModel = "anthropic/claude-3-sonnet-20240229"

// DefaultCatalog lists the models available through the provider, in
// preference order for tie-breaking.
func DefaultCatalog() []ModelProfile {
	return []ModelProfile{
		{
			ID:        "anthropic/claude-3-opus-20240229",
			Strengths: []string{"technical", "long-form", "nuanced"},
			CostTier:  "premium",
			MaxWords:  20000,
		},
		{
			ID:        "anthropic/claude-3-sonnet-20240229",
			Strengths: []string{"balanced", "creative", "instructional"},
			CostTier:  "standard",
			MaxWords:  15000,
		},
		{
			ID:        "mistralai/mistral-large-latest",
			Strengths: []string{"efficient", "technical", "structured"},
			CostTier:  "standard",
			MaxWords:  8000,
		},
		{
			ID:        "meta-llama/llama-3-70b-chat",
			Strengths: []string{"creative", "marketing", "conversational"},
			CostTier:  "standard",
			MaxWords:  8000,
		},
		{
			ID:        "google/gemini-pro",
			Strengths: []string{"factual", "reference", "analytical"},
			CostTier:  "standard",
			MaxWords:  7000,
		},
	}
}
