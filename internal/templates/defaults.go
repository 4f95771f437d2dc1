package templates

import (
	"fmt"
	"strconv"
	"strings"
)

const basePrompt = "You are a professional content creator specializing in high-quality content."

var contentTypePrompts = map[string]string{
	"blog":       "You excel at writing engaging blog posts with valuable insights.",
	"whitepaper": "You specialize in authoritative whitepapers with researched data.",
	"social":     "You craft compelling social media content that drives engagement.",
	"newsletter": "You create informative newsletters that retain readers.",
	"technical":  "You produce clear, accurate technical content.",
}

var industryPrompts = map[string]string{
	"tech":     "You have expertise in technology trends and innovations.",
	"finance":  "You understand financial markets and strategies.",
	"health":   "You communicate health info accurately and ethically.",
	"creative": "You produce inspiring, artistic content.",
	"legal":    "You explain legal concepts clearly and accurately.",
}

// DefaultPrompts builds the fallback prompt pair used when no template applies.
// The system prompt is assembled from the base sentence plus content-type and
// industry fragments when those are recognized.
func DefaultPrompts(params map[string]string) Rendered {
	contentType := valueOr(params, "content_type", "blog")
	industry := valueOr(params, "industry", "general")

	parts := []string{basePrompt}
	if fragment, ok := contentTypePrompts[strings.ToLower(contentType)]; ok {
		parts = append(parts, fragment)
	}
	if fragment, ok := industryPrompts[strings.ToLower(industry)]; ok {
		parts = append(parts, fragment)
	}

	userPrompt := fmt.Sprintf(`
Write a %s-word %s about %s for %s.
Use a %s tone. Additional brief info: %s.
Ensure the content is structured with headings and paragraphs, engaging, and readable.
Target approximately %s words.
`,
		valueOr(params, "word_count", "500"),
		contentType,
		valueOr(params, "topic", "unspecified topic"),
		valueOr(params, "target_audience", "general audience"),
		valueOr(params, "tone", "professional"),
		params["brief_text"],
		valueOr(params, "word_count", "500"),
	)

	return Rendered{
		SystemPrompt: strings.Join(parts, " "),
		UserPrompt:   userPrompt,
	}
}

// StandardParams fills the canonical render parameters from brief fields,
// applying defaults for anything missing.
func StandardParams(topic, tone, targetAudience string, wordCount int, briefText, industry, contentType string) map[string]string {
	if wordCount <= 0 {
		wordCount = 500
	}
	return map[string]string{
		"topic":           valueOrLiteral(topic, "unspecified topic"),
		"tone":            valueOrLiteral(tone, "professional"),
		"target_audience": valueOrLiteral(targetAudience, "general audience"),
		"word_count":      strconv.Itoa(wordCount),
		"brief_text":      briefText,
		"industry":        valueOrLiteral(industry, "general"),
		"content_type":    valueOrLiteral(contentType, "blog"),
	}
}

func valueOr(params map[string]string, key, fallback string) string {
	if v, ok := params[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func valueOrLiteral(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
