package summary

import (
	"context"
)

// Summary is a bounded-length synopsis of one article.
type Summary struct {
	Body      string
	WordCount int
}

// Summarizer reduces article text to roughly targetWords words. Any
// implementation must be deterministic for identical input: re-runs of
// the pipeline over an unchanged feed must produce identical drafts.
type Summarizer interface {
	Summarize(ctx context.Context, text string, targetWords int) (*Summary, error)
}
