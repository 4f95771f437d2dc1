package quality

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

type stubGrammar struct {
	issues []Issue
	err    error
}

func (s stubGrammar) Check(ctx context.Context, text string) ([]Issue, error) {
	return s.issues, s.err
}

type stubSimilarity struct {
	score float64
	err   error
}

func (s stubSimilarity) Score(a, b string) (float64, error) { return s.score, s.err }

type panickySimilarity struct{}

func (panickySimilarity) Score(a, b string) (float64, error) { panic("similarity backend broke") }

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestAssessCleanTextPasses(t *testing.T) {
	gate := &Gate{
		Grammar:    stubGrammar{},
		Similarity: stubSimilarity{score: 0.9},
		Threshold:  70,
	}
	got := gate.Assess(context.Background(), words(100)+". "+words(100)+".")

	if got.Grammar != 100 {
		t.Fatalf("grammar = %v, want 100", got.Grammar)
	}
	if math.Abs(got.Coherence-90) > 1e-9 {
		t.Fatalf("coherence = %v, want 90", got.Coherence)
	}
	if math.Abs(got.Overall-99) > 1e-9 {
		t.Fatalf("overall = %v, want 99", got.Overall)
	}
	if got.Disposition != DispositionReady {
		t.Fatalf("disposition = %q, want ready", got.Disposition)
	}
}

func TestAssessGrammarDensity(t *testing.T) {
	// 10 issues over 100 words: density 10, score 100-50 = 50.
	issues := make([]Issue, 10)
	for i := range issues {
		issues[i] = Issue{Message: "issue"}
	}
	gate := &Gate{Grammar: stubGrammar{issues: issues}, Threshold: 70}
	got := gate.Assess(context.Background(), words(100))

	if math.Abs(got.Grammar-50) > 1e-9 {
		t.Fatalf("grammar = %v, want 50", got.Grammar)
	}
	if got.Disposition != DispositionReviewNeeded {
		t.Fatalf("disposition = %q, want review_needed", got.Disposition)
	}
	if len(got.Issues) != 10 {
		t.Fatalf("issues = %d, want capped sample of 10", len(got.Issues))
	}
}

func TestAssessGrammarScoreFloorsAtZero(t *testing.T) {
	issues := make([]Issue, 50)
	gate := &Gate{Grammar: stubGrammar{issues: issues}, Threshold: 70}
	got := gate.Assess(context.Background(), words(50))
	if got.Grammar != 0 {
		t.Fatalf("grammar = %v, want 0", got.Grammar)
	}
}

func TestAssessFallbackScores(t *testing.T) {
	t.Run("nil checkers", func(t *testing.T) {
		gate := &Gate{Threshold: 70}
		got := gate.Assess(context.Background(), words(20)+". "+words(20)+".")
		if got.Grammar != 80 || got.Coherence != 80 {
			t.Fatalf("grammar/coherence = %v/%v, want 80/80", got.Grammar, got.Coherence)
		}
	})
	t.Run("checker errors", func(t *testing.T) {
		gate := &Gate{
			Grammar:    stubGrammar{err: errors.New("server down")},
			Similarity: stubSimilarity{err: errors.New("no model")},
			Threshold:  70,
		}
		got := gate.Assess(context.Background(), words(20)+". "+words(20)+".")
		if got.Grammar != 70 || got.Coherence != 70 {
			t.Fatalf("grammar/coherence = %v/%v, want 70/70", got.Grammar, got.Coherence)
		}
		if got.Disposition != DispositionReady {
			t.Fatalf("70 overall meets a 70 threshold, got %q", got.Disposition)
		}
	})
}

func TestAssessSingleSentenceCoherence(t *testing.T) {
	gate := &Gate{Similarity: stubSimilarity{score: 0.1}, Threshold: 70}
	got := gate.Assess(context.Background(), "One lonely sentence without much to say.")
	if got.Coherence != 100 {
		t.Fatalf("coherence = %v, want 100 for a single sentence", got.Coherence)
	}
}

func TestAssessRecoversFromPanic(t *testing.T) {
	gate := &Gate{Similarity: panickySimilarity{}, Threshold: 70}
	got := gate.Assess(context.Background(), "First sentence. Second sentence.")
	if got.Disposition != DispositionReviewNeeded {
		t.Fatalf("disposition = %q, want review_needed after panic", got.Disposition)
	}
	if got.Overall != 70 {
		t.Fatalf("overall = %v, want conservative 70", got.Overall)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one! Third?\n\n# Heading fragment")
	if len(got) != 4 {
		t.Fatalf("got %d sentences: %v", len(got), got)
	}
	if got[0] != "First sentence." || got[3] != "# Heading fragment" {
		t.Fatalf("unexpected split: %v", got)
	}
}

func TestLexicalSimilarity(t *testing.T) {
	sim := LexicalSimilarity{}

	same, _ := sim.Score("the cat sat", "the cat sat")
	if math.Abs(same-1) > 1e-9 {
		t.Fatalf("identical sentences = %v, want 1", same)
	}
	none, _ := sim.Score("alpha beta", "gamma delta")
	if none != 0 {
		t.Fatalf("disjoint sentences = %v, want 0", none)
	}
	partial, _ := sim.Score("the cat sat", "the dog sat")
	if partial <= 0 || partial >= 1 {
		t.Fatalf("overlapping sentences = %v, want between 0 and 1", partial)
	}
	empty, _ := sim.Score("", "anything")
	if empty != 0 {
		t.Fatalf("empty sentence = %v, want 0", empty)
	}
}
