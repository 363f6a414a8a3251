package drafts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lysyi3m/rss-drafter/app/feed"
	"github.com/lysyi3m/rss-drafter/app/summary"
)

// Draft is one rendered output document.
type Draft struct {
	Filename string
	Path     string
	Metadata map[string]string
	Body     string
}

// Writer renders a draft document (front-matter block plus summary
// body) and persists it. Filenames are derived from the publication
// date and the title slug, so re-processing the same logical item
// overwrites its own file instead of accumulating copies.
type Writer struct {
	draftsDir string
	author    string
	tags      []string
	dryRun    bool
}

func NewWriter(draftsDir, author string, tags []string, dryRun bool) *Writer {
	return &Writer{
		draftsDir: draftsDir,
		author:    author,
		tags:      tags,
		dryRun:    dryRun,
	}
}

func (w *Writer) Write(item feed.Item, sum *summary.Summary) (*Draft, error) {
	if item.PublishedAt == nil {
		return nil, fmt.Errorf("item %s has no publication date", item.ID)
	}

	title := item.Title
	if title == "" {
		title = item.URL
	}

	date := item.PublishedAt.UTC().Format("2006-01-02")
	filename := fmt.Sprintf("%s-%s.md", date, Slugify(title))

	draft := &Draft{
		Filename: filename,
		Path:     filepath.Join(w.draftsDir, filename),
		Metadata: map[string]string{
			"title":      title,
			"date":       item.PublishedAt.UTC().Format("2006-01-02T15:04:05-07:00"),
			"author":     w.author,
			"source_url": item.URL,
			"tags":       strings.Join(w.tags, ", "),
		},
		Body: sum.Body,
	}

	if w.dryRun {
		slog.Info("Dry run, draft not written", "filename", filename)
		return draft, nil
	}

	if err := os.MkdirAll(w.draftsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create drafts directory: %w", err)
	}

	if err := atomicWrite(draft.Path, []byte(w.render(draft))); err != nil {
		return nil, fmt.Errorf("failed to write draft: %w", err)
	}

	slog.Debug("Draft written", "filename", filename, "words", sum.WordCount)
	return draft, nil
}

// render produces the document: a front-matter block with a fixed key
// order, a blank line, the summary body and a source byline.
func (w *Writer) render(draft *Draft) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", draft.Metadata["title"])
	fmt.Fprintf(&b, "date: %s\n", draft.Metadata["date"])
	fmt.Fprintf(&b, "author: %q\n", draft.Metadata["author"])
	if url := draft.Metadata["source_url"]; url != "" {
		fmt.Fprintf(&b, "source_url: %q\n", url)
	}
	if len(w.tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(w.tags, ", "))
	}
	b.WriteString("---\n\n")

	b.WriteString(draft.Body)
	b.WriteString("\n")

	if url := draft.Metadata["source_url"]; url != "" {
		fmt.Fprintf(&b, "\n[Source](%s)\n", url)
	}

	return b.String()
}

// atomicWrite persists through a temp file and rename so a concurrent
// reader never observes a partially written draft.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
