package templates

import (
	"strings"
	"testing"
)

func TestDefaultPromptsKnownFragments(t *testing.T) {
	params := StandardParams("AI trends", "casual", "engineers", 800, "cover LLMs", "tech", "blog")
	got := DefaultPrompts(params)

	if !strings.HasPrefix(got.SystemPrompt, basePrompt) {
		t.Fatalf("system prompt missing base: %q", got.SystemPrompt)
	}
	if !strings.Contains(got.SystemPrompt, contentTypePrompts["blog"]) {
		t.Fatalf("system prompt missing blog fragment: %q", got.SystemPrompt)
	}
	if !strings.Contains(got.SystemPrompt, industryPrompts["tech"]) {
		t.Fatalf("system prompt missing tech fragment: %q", got.SystemPrompt)
	}
	if !strings.Contains(got.UserPrompt, "800-word blog about AI trends for engineers") {
		t.Fatalf("user prompt = %q", got.UserPrompt)
	}
	if !strings.Contains(got.UserPrompt, "casual tone") {
		t.Fatalf("user prompt missing tone: %q", got.UserPrompt)
	}
}

func TestDefaultPromptsUnknownTypeAndIndustry(t *testing.T) {
	params := StandardParams("", "", "", 0, "", "agriculture", "podcast")
	got := DefaultPrompts(params)

	if got.SystemPrompt != basePrompt {
		t.Fatalf("unknown type/industry should leave only the base prompt, got %q", got.SystemPrompt)
	}
	if !strings.Contains(got.UserPrompt, "500-word podcast about unspecified topic for general audience") {
		t.Fatalf("defaults not applied: %q", got.UserPrompt)
	}
	if !strings.Contains(got.UserPrompt, "professional tone") {
		t.Fatalf("default tone not applied: %q", got.UserPrompt)
	}
}
