package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/rss-drafter/app/database"
	"github.com/lysyi3m/rss-drafter/app/drafts"
	"github.com/lysyi3m/rss-drafter/app/extract"
	"github.com/lysyi3m/rss-drafter/app/feed"
	"github.com/lysyi3m/rss-drafter/app/summary"
)

// Collaborator contracts. The pipeline owns the control flow; every
// step behind an interface can be swapped (and faked in tests).

type FeedFetcher interface {
	Fetch(ctx context.Context) ([]feed.RawItem, error)
}

type Extractor interface {
	Run(ctx context.Context, url string) (*extract.Content, error)
}

type DraftWriter interface {
	Write(item feed.Item, sum *summary.Summary) (*drafts.Draft, error)
}

type SeenStore interface {
	Contains(id string) bool
	Add(id string)
	Persist() error
}

type DraftArchive interface {
	RecordDraft(record database.DraftRecord) error
	CountDrafts() (int, error)
}

// RunResult is the machine-readable run summary printed to stdout.
type RunResult struct {
	Created       []string       `json:"created"`
	Skipped       map[string]int `json:"skipped,omitempty"`
	TotalArchived int            `json:"total_archived,omitempty"`
}

type Deps struct {
	Fetcher    FeedFetcher
	Normalizer *feed.Normalizer
	Filterer   *feed.Filterer
	Ranker     *feed.Ranker
	Extractor  Extractor
	Summarizer summary.Summarizer
	Writer     DraftWriter
	Seen       SeenStore
	Archive    DraftArchive // nil = archive disabled
	Clock      func() time.Time
}

type Options struct {
	TargetWords     int
	ExtractMinWords int
	WorkerCount     int
	DryRun          bool
}

// Pipeline runs one complete drafting cycle: normalize, dedup, filter,
// rank, then fetch/extract/summarize/write each survivor. Items are
// independent after ranking, so survivors are processed on a small
// worker pool; the seen set and the archive are only touched from the
// collecting goroutine.
type Pipeline struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Pipeline {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if opts.WorkerCount < 1 {
		opts.WorkerCount = 1
	}
	return &Pipeline{deps: deps, opts: opts}
}

func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	now := p.deps.Clock().UTC()

	result := &RunResult{
		Created: []string{},
		Skipped: make(map[string]int),
	}

	rawItems, err := p.deps.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	slog.Info("Feed fetched", "items", len(rawItems))

	candidates := p.selectCandidates(rawItems, now, result)
	ranked := p.deps.Ranker.Run(candidates, now)
	slog.Info("Candidates selected", "eligible", len(candidates), "selected", len(ranked))

	outcomes := p.processAll(ctx, ranked)

	for _, outcome := range outcomes {
		if outcome.failure != nil {
			result.Skipped[string(outcome.failure.Kind)]++
			slog.Warn("Item skipped", "id", outcome.item.ID, "title", outcome.item.Title, "reason", outcome.failure.Kind, "permanent", outcome.failure.Permanent, "error", outcome.failure.Err)
			if outcome.failure.Permanent {
				p.markSeen(outcome.item.ID)
			}
			continue
		}

		result.Created = append(result.Created, outcome.draft.Filename)
		p.markSeen(outcome.item.ID)
		p.archive(outcome, now)
		slog.Info("Draft created", "id", outcome.item.ID, "filename", outcome.draft.Filename, "words", outcome.wordCount)
	}

	if err := p.persistSeen(); err != nil {
		slog.Error("Failed to persist seen state", "error", err)
	}

	if p.deps.Archive != nil {
		if count, err := p.deps.Archive.CountDrafts(); err == nil {
			result.TotalArchived = count
		}
	}

	return result, nil
}

// selectCandidates normalizes every raw item and applies dedup plus the
// freshness/quality gate. Permanent rejections (no date, past the
// window) are marked seen immediately: they can never become eligible.
func (p *Pipeline) selectCandidates(rawItems []feed.RawItem, now time.Time, result *RunResult) []feed.Item {
	var candidates []feed.Item

	for i, raw := range rawItems {
		item := p.deps.Normalizer.Run(raw, i)

		if p.deps.Seen.Contains(item.ID) {
			result.Skipped[string(feed.ReasonSeen)]++
			continue
		}

		if reason := p.deps.Filterer.Run(item, now); reason != feed.ReasonNone {
			result.Skipped[string(reason)]++
			slog.Debug("Item rejected", "id", item.ID, "title", item.Title, "reason", reason)
			if reason.Permanent() {
				p.markSeen(item.ID)
			}
			continue
		}

		candidates = append(candidates, item)
	}

	return candidates
}

type itemOutcome struct {
	index     int
	item      feed.Item
	draft     *drafts.Draft
	wordCount int
	failure   *ItemFailure
}

// processAll runs the per-item work on a bounded worker pool and
// returns outcomes in rank order, keeping the run deterministic
// regardless of completion order.
func (p *Pipeline) processAll(ctx context.Context, ranked []feed.Item) []itemOutcome {
	outcomes := make([]itemOutcome, len(ranked))
	if len(ranked) == 0 {
		return outcomes
	}

	jobs := make(chan int)
	results := make(chan itemOutcome)

	var wg sync.WaitGroup
	for w := 0; w < p.opts.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				results <- p.processItem(ctx, index, ranked[index])
			}
		}()
	}

	go func() {
		for index := range ranked {
			jobs <- index
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		outcomes[outcome.index] = outcome
	}

	return outcomes
}

// processItem takes one ranked item all the way to a written draft.
// Extraction failures fall back to the item's bundled content before
// giving up; the bundled text needs no network I/O, so it is gated here
// rather than inside the extractor.
func (p *Pipeline) processItem(ctx context.Context, index int, item feed.Item) itemOutcome {
	outcome := itemOutcome{index: index, item: item}

	text, failure := p.resolveText(ctx, item)
	if failure != nil {
		outcome.failure = failure
		return outcome
	}

	sum, err := p.deps.Summarizer.Summarize(ctx, text, p.opts.TargetWords)
	if err != nil {
		outcome.failure = &ItemFailure{Kind: FailureSummarize, Err: err}
		return outcome
	}

	draft, err := p.deps.Writer.Write(item, sum)
	if err != nil {
		outcome.failure = &ItemFailure{Kind: FailureWrite, Err: err}
		return outcome
	}

	outcome.draft = draft
	outcome.wordCount = sum.WordCount
	return outcome
}

func (p *Pipeline) resolveText(ctx context.Context, item feed.Item) (string, *ItemFailure) {
	if item.URL == "" {
		return "", &ItemFailure{Kind: FailureNoURL, Permanent: true}
	}

	content, err := p.deps.Extractor.Run(ctx, item.URL)
	if err == nil {
		return content.Text, nil
	}

	// The source page gave nothing usable; the feed entry itself may
	// still carry a full body.
	if bundled := extract.CleanText(extract.StripHTML(item.RawContentHTML)); extract.WordCount(bundled) >= p.opts.ExtractMinWords {
		slog.Debug("Extraction failed, using bundled feed content", "id", item.ID, "url", item.URL, "error", err)
		return bundled, nil
	}

	var fetchErr *extract.FetchError
	if errors.As(err, &fetchErr) {
		return "", &ItemFailure{Kind: FailureFetch, Err: err}
	}

	return "", &ItemFailure{Kind: FailureExtraction, Permanent: true, Err: err}
}

func (p *Pipeline) markSeen(id string) {
	if p.opts.DryRun {
		return
	}
	p.deps.Seen.Add(id)
}

func (p *Pipeline) persistSeen() error {
	if p.opts.DryRun {
		return nil
	}
	return p.deps.Seen.Persist()
}

func (p *Pipeline) archive(outcome itemOutcome, now time.Time) {
	if p.deps.Archive == nil || p.opts.DryRun {
		return
	}

	record := database.DraftRecord{
		ID:          outcome.item.ID,
		Title:       outcome.item.Title,
		Link:        outcome.item.URL,
		PublishedAt: outcome.item.PublishedAt,
		Filename:    outcome.draft.Filename,
		WordCount:   outcome.wordCount,
		DraftedAt:   now,
	}

	if err := p.deps.Archive.RecordDraft(record); err != nil {
		slog.Warn("Failed to archive draft record", "id", outcome.item.ID, "error", err)
	}
}
