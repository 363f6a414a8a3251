package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Content is the readable article text pulled from one page.
type Content struct {
	Title string
	Text  string
}

// FetchError reports that the page could not be retrieved at all:
// network failure, timeout or a non-2xx status. Transient by nature.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that the page was retrieved but no strategy
// produced enough usable text.
type ExtractionError struct {
	URL string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no strategy extracted usable content from %s", e.URL)
}

// Extractor retrieves an article page and runs the strategy chain over
// it. Strategies share a single success predicate: the cleaned text
// must reach the configured word minimum.
type Extractor struct {
	httpClient *http.Client
	strategies []Strategy
	minWords   int
	userAgent  string
	timeout    time.Duration
}

func NewExtractor(httpClient *http.Client, minWords int, userAgent string, timeout time.Duration) *Extractor {
	return &Extractor{
		httpClient: httpClient,
		strategies: []Strategy{
			&readabilityStrategy{},
			&domStrategy{},
			&stripStrategy{},
		},
		minWords:  minWords,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (e *Extractor) Run(ctx context.Context, pageURL string) (*Content, error) {
	data, err := e.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	for _, strategy := range e.strategies {
		content, err := strategy.Run(data, pageURL)
		if err != nil {
			slog.Debug("Extraction strategy failed", "strategy", strategy.Name(), "url", pageURL, "error", err)
			continue
		}

		content.Text = CleanText(content.Text)
		words := WordCount(content.Text)
		if words < e.minWords {
			slog.Debug("Extraction strategy below word minimum", "strategy", strategy.Name(), "url", pageURL, "words", words, "min_words", e.minWords)
			continue
		}

		slog.Debug("Content extracted", "strategy", strategy.Name(), "url", pageURL, "words", words)
		return content, nil
	}

	return nil, &ExtractionError{URL: pageURL}
}

func (e *Extractor) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	return data, nil
}
