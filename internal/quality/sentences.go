package quality

import "strings"

// SplitSentences breaks text into sentences on terminal punctuation. Markdown
// headings and blank-line separated fragments count as sentences too, since
// generated content is usually markdown.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '.', '!', '?':
			current.WriteRune(r)
			// Consume trailing punctuation like "?!" or "...".
			for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
				i++
				current.WriteRune(runes[i])
			}
			flush()
		case '\n':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				flush()
			} else {
				current.WriteRune(' ')
			}
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return sentences
}
