package quality

import (
	"math"
	"strings"
	"unicode"
)

// LexicalSimilarity scores sentence similarity as the cosine of term
// frequency vectors over lowercased word tokens.
type LexicalSimilarity struct{}

// Score returns a value in [0,1]; two empty sentences score zero.
func (LexicalSimilarity) Score(a, b string) (float64, error) {
	va := termFrequencies(a)
	vb := termFrequencies(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0, nil
	}

	var dot, normA, normB float64
	for term, fa := range va {
		normA += fa * fa
		if fb, ok := vb[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range vb {
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func termFrequencies(s string) map[string]float64 {
	freq := map[string]float64{}
	for _, token := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		freq[token]++
	}
	return freq
}

var _ SimilarityScorer = LexicalSimilarity{}
