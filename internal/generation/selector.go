package generation

import (
	"strings"

	"content-backend/internal/shared/telemetry"
)

var contentTypeStrengths = map[string][]string{
	"blog":       {"creative", "structured", "conversational"},
	"whitepaper": {"technical", "analytical", "reference"},
	"social":     {"creative", "conversational", "marketing"},
	"newsletter": {"balanced", "instructional", "creative"},
	"technical":  {"technical", "reference", "analytical"},
}

var industryStrengths = map[string][]string{
	"tech":     {"technical", "analytical", "factual"},
	"finance":  {"analytical", "reference", "structured"},
	"health":   {"factual", "reference", "nuanced"},
	"creative": {"creative", "conversational", "balanced"},
	"legal":    {"nuanced", "analytical", "reference"},
}

var tierRank = map[string]int{"economy": 0, "standard": 1, "premium": 2}

// Selector picks a model for a brief from an immutable catalog.
type Selector struct {
	catalog []ModelProfile
}

// NewSelector constructs a Selector. A nil or empty catalog falls back to the
// default one.
func NewSelector(catalog []ModelProfile) *Selector {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	return &Selector{catalog: catalog}
}

// Select picks the model whose strengths best match the content type and
// industry, among models within budget that can produce the requested length.
// Ties go to the earliest catalog entry; an empty candidate set falls back to
// the default model.
func (s *Selector) Select(contentType, industry string, length int, budgetTier string) string {
	relevant := relevantStrengths(contentType, industry)

	best := ""
	bestScore := -1
	for _, profile := range s.catalog {
		if !withinBudget(profile.CostTier, budgetTier) || profile.MaxWords < length {
			continue
		}
		score := 0
		for _, strength := range profile.Strengths {
			if relevant[strength] {
				score++
			}
		}
		if score > bestScore {
			best = profile.ID
			bestScore = score
		}
	}

	if best == "" {
		telemetry.Warn("generation.no_suitable_model", map[string]any{
			"content_type": contentType,
			"industry":     industry,
			"length":       length,
			"budget_tier":  budgetTier,
		})
		return DefaultModel
	}
	return best
}

// withinBudget allows models at or below the budget tier. Unknown model tiers
// count as economy; unknown budgets count as standard.
func withinBudget(modelTier, budgetTier string) bool {
	modelRank, ok := tierRank[modelTier]
	if !ok {
		modelRank = 0
	}
	budgetRank, ok := tierRank[budgetTier]
	if !ok {
		budgetRank = 1
	}
	return modelRank <= budgetRank
}

func relevantStrengths(contentType, industry string) map[string]bool {
	relevant := map[string]bool{}
	tags, ok := contentTypeStrengths[strings.ToLower(contentType)]
	if !ok {
		tags = []string{"balanced"}
	}
	for _, tag := range tags {
		relevant[tag] = true
	}
	tags, ok = industryStrengths[strings.ToLower(industry)]
	if !ok {
		tags = []string{"balanced"}
	}
	for _, tag := range tags {
		relevant[tag] = true
	}
	return relevant
}
