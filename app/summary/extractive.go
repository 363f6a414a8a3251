package summary

import (
	"context"
	"strings"
	"unicode"
)

// Sentences below this many tokens are treated as noise (navigation
// crumbs, bylines, "Read more" stubs) and skipped.
const minSentenceWords = 4

const ellipsis = "…"

// Extractive is the baseline summarizer: sentences are kept in original
// order until the running word count reaches the target. No model, no
// randomness; identical input yields byte-identical output.
type Extractive struct {
	tolerance int
}

func NewExtractive(tolerance int) *Extractive {
	return &Extractive{tolerance: tolerance}
}

func (s *Extractive) Summarize(ctx context.Context, text string, targetWords int) (*Summary, error) {
	var parts []string
	words := 0

	for _, sentence := range splitSentences(text) {
		tokens := strings.Fields(sentence)
		if len(tokens) < minSentenceWords {
			continue
		}

		parts = append(parts, sentence)
		words += len(tokens)
		if words >= targetWords {
			break
		}
	}

	body := strings.Join(parts, " ")
	if body == "" {
		// Every sentence fell under the noise threshold; degrade to a
		// plain word truncation of the input.
		body = strings.Join(strings.Fields(text), " ")
	}

	tokens := strings.Fields(body)
	if len(tokens) > targetWords+s.tolerance {
		body = strings.Join(tokens[:targetWords], " ") + ellipsis
		tokens = strings.Fields(body)
	}

	return &Summary{
		Body:      body,
		WordCount: len(tokens),
	}, nil
}

// splitSentences cuts text after sentence-final punctuation followed by
// whitespace. Deliberately simple: it only has to be deterministic and
// roughly right, not linguistically complete.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				if sentence := strings.TrimSpace(b.String()); sentence != "" {
					sentences = append(sentences, sentence)
				}
				b.Reset()
			}
		}
	}

	if rest := strings.TrimSpace(b.String()); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}
