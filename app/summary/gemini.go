package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Gemini summarizes through the Gemini API. Temperature is pinned to
// zero so repeated runs over the same article stay stable. On any API
// failure it degrades to the extractive baseline rather than failing
// the item.
type Gemini struct {
	client   *genai.Client
	model    string
	fallback Summarizer
}

func NewGemini(ctx context.Context, apiKey, model string, fallback Summarizer) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:   client,
		model:    model,
		fallback: fallback,
	}, nil
}

func (s *Gemini) Summarize(ctx context.Context, text string, targetWords int) (*Summary, error) {
	prompt := fmt.Sprintf(
		"Summarize the following article in roughly %d words. "+
			"Keep the original language, keep only facts stated in the text, "+
			"and return plain prose with no headings, lists or commentary.\n\n%s",
		targetWords, text)

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float64](0),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		slog.Warn("Gemini summarization failed, falling back to extractive", "model", s.model, "error", err)
		return s.fallback.Summarize(ctx, text, targetWords)
	}

	body, err := result.Text()
	if err != nil || strings.TrimSpace(body) == "" {
		slog.Warn("Gemini returned no usable text, falling back to extractive", "model", s.model, "error", err)
		return s.fallback.Summarize(ctx, text, targetWords)
	}

	body = strings.TrimSpace(body)
	return &Summary{
		Body:      body,
		WordCount: len(strings.Fields(body)),
	}, nil
}
