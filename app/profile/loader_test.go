package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullProfile(t *testing.T) {
	path := writeProfile(t, `
feed_url: https://example.com/feed.json
lookback_hours: 12
max_posts: 5
min_words: 60
target_words: 200
word_tolerance: 40
author: editor
tags:
  - news
  - tech
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.FeedURL != "https://example.com/feed.json" {
		t.Errorf("Unexpected feed URL: %q", p.FeedURL)
	}
	if p.LookbackHours != 12 || p.MaxPosts != 5 || p.MinWords != 60 {
		t.Errorf("Unexpected selection knobs: %+v", p)
	}
	if p.TargetWords != 200 || p.WordTolerance != 40 {
		t.Errorf("Unexpected summary knobs: %+v", p)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "news" {
		t.Errorf("Unexpected tags: %v", p.Tags)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeProfile(t, `feed_url: https://example.com/feed.json`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.LookbackHours != 6 {
		t.Errorf("Expected default lookback of 6 hours, got %d", p.LookbackHours)
	}
	if p.MaxPosts != 3 {
		t.Errorf("Expected default max posts of 3, got %d", p.MaxPosts)
	}
	if p.MinWords != 40 {
		t.Errorf("Expected default min words of 40, got %d", p.MinWords)
	}
	if p.ExtractMinWords != p.MinWords {
		t.Errorf("Expected extract_min_words to default to min_words, got %d", p.ExtractMinWords)
	}
	if p.TargetWords != 150 || p.WordTolerance != 30 {
		t.Errorf("Unexpected summary defaults: %+v", p)
	}
	if p.Author != "newsdesk" {
		t.Errorf("Expected default author, got %q", p.Author)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected a missing profile to be tolerated, got %v", err)
	}
	if p.MaxPosts != 3 {
		t.Errorf("Expected defaults, got %+v", p)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeProfile(t, "feed_url: [unclosed")

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}

func TestLoad_RejectsNegativeValues(t *testing.T) {
	path := writeProfile(t, `
feed_url: https://example.com/feed.json
lookback_hours: -1
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for a negative lookback")
	}
}
