package templates

import (
	"strings"
	"testing"
)

func TestRenderSubstitutesAllParams(t *testing.T) {
	tpl := Template{
		SystemPrompt:       "You are a writer.",
		UserPromptTemplate: "Write about {topic} in a {tone} tone for {target_audience}.",
	}
	got := Render(tpl, map[string]string{
		"topic":           "compound interest",
		"tone":            "friendly",
		"target_audience": "retail investors",
	})
	want := "Write about compound interest in a friendly tone for retail investors."
	if got.UserPrompt != want {
		t.Fatalf("user prompt = %q, want %q", got.UserPrompt, want)
	}
	if got.SystemPrompt != tpl.SystemPrompt {
		t.Fatalf("system prompt changed: %q", got.SystemPrompt)
	}
}

func TestRenderLeavesUnknownPlaceholdersLiteral(t *testing.T) {
	tpl := Template{
		UserPromptTemplate: "Write about {topic} citing {source_count} sources.",
	}
	got := Render(tpl, map[string]string{"topic": "inflation"})
	if !strings.Contains(got.UserPrompt, "inflation") {
		t.Fatalf("known placeholder not substituted: %q", got.UserPrompt)
	}
	if !strings.Contains(got.UserPrompt, "{source_count}") {
		t.Fatalf("unknown placeholder should stay literal: %q", got.UserPrompt)
	}
}

func TestRenderNoParams(t *testing.T) {
	tpl := Template{UserPromptTemplate: "Write about {topic}."}
	got := Render(tpl, nil)
	if got.UserPrompt != "Write about {topic}." {
		t.Fatalf("user prompt = %q", got.UserPrompt)
	}
}

func TestMissingParams(t *testing.T) {
	tpl := Template{UserPromptTemplate: "{topic} {tone} {topic} {extra}"}
	missing := MissingParams(tpl, map[string]string{"topic": "x"})
	if len(missing) != 2 {
		t.Fatalf("missing = %v, want [tone extra]", missing)
	}
}
