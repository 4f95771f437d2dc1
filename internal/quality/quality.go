package quality

import (
	"context"
	"strings"

	"content-backend/internal/shared/telemetry"
)

// Dispositions a quality assessment can reach.
const (
	DispositionReady        = "ready_for_delivery"
	DispositionReviewNeeded = "review_needed"
)

// Fallback scores when a checker is absent or fails.
const (
	scoreUnavailable = 80.0
	scoreCheckFailed = 70.0
)

// Issue is a single grammar finding.
type Issue struct {
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
}

// GrammarChecker finds grammar issues in a text.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]Issue, error)
}

// SimilarityScorer scores how similar two sentences are, in [0,1].
type SimilarityScorer interface {
	Score(a, b string) (float64, error)
}

// Assessment is the outcome of a quality check.
type Assessment struct {
	Overall     float64  `json:"overall"`
	Grammar     float64  `json:"grammar"`
	Coherence   float64  `json:"coherence"`
	Issues      []string `json:"issues,omitempty"`
	Disposition string   `json:"disposition"`
}

// Gate scores generated text and decides whether it needs manual review.
// Either checker may be nil; scoring then falls back to neutral defaults.
type Gate struct {
	Grammar    GrammarChecker
	Similarity SimilarityScorer
	Threshold  float64
}

// Assess scores the text. Grammar carries 90% of the overall score and
// coherence 10%; anything under the threshold is flagged for review. A panic
// inside a checker degrades to conservative scores rather than crashing the
// pipeline.
func (g *Gate) Assess(ctx context.Context, text string) (assessment Assessment) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("quality.panic", map[string]any{"panic": r})
			assessment = Assessment{
				Overall:     scoreCheckFailed,
				Grammar:     scoreCheckFailed,
				Coherence:   scoreCheckFailed,
				Disposition: DispositionReviewNeeded,
			}
		}
	}()

	grammarScore, issues := g.checkGrammar(ctx, text)
	coherenceScore := g.checkCoherence(text)

	assessment = Assessment{
		Grammar:   grammarScore,
		Coherence: coherenceScore,
		Overall:   grammarScore*0.9 + coherenceScore*0.1,
		Issues:    issues,
	}
	if assessment.Overall < g.Threshold {
		assessment.Disposition = DispositionReviewNeeded
	} else {
		assessment.Disposition = DispositionReady
	}
	return assessment
}

// checkGrammar scores by issue density: issues per 100 words, five points
// each, floored at zero.
func (g *Gate) checkGrammar(ctx context.Context, text string) (float64, []string) {
	if g.Grammar == nil {
		return scoreUnavailable, nil
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return scoreCheckFailed, nil
	}

	found, err := g.Grammar.Check(ctx, text)
	if err != nil {
		telemetry.Error("quality.grammar_check_failed", map[string]any{"error": err.Error()})
		return scoreCheckFailed, nil
	}

	density := float64(len(found)) / (float64(words) / 100.0)
	score := 100.0 - density*5.0
	if score < 0 {
		score = 0
	}

	issues := make([]string, 0, len(found))
	for i, issue := range found {
		if i == 10 {
			break
		}
		issues = append(issues, issue.Message)
	}
	return score, issues
}

// checkCoherence averages adjacent-sentence similarity and scales it to 0-100.
// A single sentence is trivially coherent.
func (g *Gate) checkCoherence(text string) float64 {
	if g.Similarity == nil {
		return scoreUnavailable
	}
	sentences := SplitSentences(text)
	if len(sentences) <= 1 {
		return 100.0
	}

	var sum float64
	for i := 0; i < len(sentences)-1; i++ {
		score, err := g.Similarity.Score(sentences[i], sentences[i+1])
		if err != nil {
			telemetry.Error("quality.coherence_check_failed", map[string]any{"error": err.Error()})
			return scoreCheckFailed
		}
		sum += score
	}
	return sum / float64(len(sentences)-1) * 100.0
}
