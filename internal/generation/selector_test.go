package generation

import "testing"

func TestSelectWhitepaperTechPrefersAnalyticalModel(t *testing.T) {
	s := NewSelector(nil)
	got := s.Select("whitepaper", "tech", 5000, "premium")
	if got != "google/gemini-pro" {
		t.Fatalf("got %q, want gemini-pro for analytical/reference/factual overlap", got)
	}
}

func TestSelectLongPremiumBriefPicksOpus(t *testing.T) {
	s := NewSelector(nil)
	got := s.Select("whitepaper", "tech", 16000, "premium")
	if got != "anthropic/claude-3-opus-20240229" {
		t.Fatalf("got %q, want opus as the only model over 16k words", got)
	}
}

func TestSelectBudgetExcludesPremium(t *testing.T) {
	s := NewSelector(nil)
	got := s.Select("whitepaper", "tech", 5000, "standard")
	if got != "google/gemini-pro" {
		t.Fatalf("got %q, want the best-scoring standard model", got)
	}
}

func TestSelectLengthFiltersSmallModels(t *testing.T) {
	s := NewSelector(nil)
	got := s.Select("blog", "creative", 10000, "standard")
	if got != "anthropic/claude-3-sonnet-20240229" {
		t.Fatalf("got %q, want sonnet as the only standard model over 10k words", got)
	}
}

func TestSelectNoCandidateFallsBackToDefault(t *testing.T) {
	s := NewSelector(nil)
	if got := s.Select("blog", "tech", 50000, "economy"); got != DefaultModel {
		t.Fatalf("got %q, want default", got)
	}
}

func TestSelectUnknownInputs(t *testing.T) {
	s := NewSelector(nil)
	// Unknown content type and industry both map to the balanced tag; sonnet
	// is the only model carrying it.
	if got := s.Select("podcast", "agriculture", 500, "standard"); got != "anthropic/claude-3-sonnet-20240229" {
		t.Fatalf("got %q", got)
	}
	// Unknown budget is treated as standard.
	if got := s.Select("whitepaper", "tech", 5000, "platinum"); got == "anthropic/claude-3-opus-20240229" {
		t.Fatalf("unknown budget must not unlock premium models")
	}
}

func TestSelectTieBreaksOnCatalogOrder(t *testing.T) {
	s := NewSelector([]ModelProfile{
		{ID: "first", Strengths: []string{"balanced"}, CostTier: "standard", MaxWords: 1000},
		{ID: "second", Strengths: []string{"balanced"}, CostTier: "standard", MaxWords: 1000},
	})
	if got := s.Select("podcast", "unknown", 500, "standard"); got != "first" {
		t.Fatalf("got %q, want first catalog entry on a tie", got)
	}
}

func TestWithinBudgetUnknownModelTierIsEconomy(t *testing.T) {
	if !withinBudget("mystery", "economy") {
		t.Fatal("unknown model tier should rank as economy")
	}
	if withinBudget("premium", "economy") {
		t.Fatal("premium must exceed an economy budget")
	}
}
