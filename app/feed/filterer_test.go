package feed

import (
	"strings"
	"testing"
	"time"
)

func testItem(publishedAt *time.Time, words int) Item {
	body := strings.TrimSpace(strings.Repeat("word ", words))
	return Item{
		ID:             "item-1",
		Title:          "Test Item",
		URL:            "https://example.com/a",
		PublishedAt:    publishedAt,
		RawContentHTML: "<p>" + body + "</p>",
	}
}

func TestFilterer_Run_AcceptsFreshItem(t *testing.T) {
	filterer := NewFilterer(6, 40)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	published := now.Add(-2 * time.Hour)

	reason := filterer.Run(testItem(&published, 50), now)
	if reason != ReasonNone {
		t.Errorf("Expected item to pass, got reason %q", reason)
	}
}

func TestFilterer_Run_RejectsMissingDate(t *testing.T) {
	filterer := NewFilterer(6, 40)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	reason := filterer.Run(testItem(nil, 50), now)
	if reason != ReasonNoDate {
		t.Errorf("Expected %q, got %q", ReasonNoDate, reason)
	}
	if !reason.Permanent() {
		t.Error("Expected no_date rejection to be permanent")
	}
}

func TestFilterer_Run_RejectsStaleItem(t *testing.T) {
	filterer := NewFilterer(6, 40)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	published := now.Add(-7 * time.Hour)

	reason := filterer.Run(testItem(&published, 50), now)
	if reason != ReasonTooOld {
		t.Errorf("Expected %q, got %q", ReasonTooOld, reason)
	}
	if !reason.Permanent() {
		t.Error("Expected too_old rejection to be permanent")
	}
}

func TestFilterer_Run_WindowBoundaryInclusive(t *testing.T) {
	filterer := NewFilterer(6, 40)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	published := now.Add(-6 * time.Hour)

	reason := filterer.Run(testItem(&published, 50), now)
	if reason != ReasonNone {
		t.Errorf("Expected item exactly at the window edge to pass, got %q", reason)
	}
}

func TestFilterer_Run_RejectsShortContent(t *testing.T) {
	filterer := NewFilterer(6, 40)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	published := now.Add(-1 * time.Hour)

	reason := filterer.Run(testItem(&published, 10), now)
	if reason != ReasonTooShort {
		t.Errorf("Expected %q, got %q", ReasonTooShort, reason)
	}
	if reason.Permanent() {
		t.Error("Expected too_short rejection to be transient")
	}
}

func TestFilterer_Run_CountsWordsAfterStrippingMarkup(t *testing.T) {
	filterer := NewFilterer(6, 5)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	published := now.Add(-1 * time.Hour)

	item := Item{
		ID:             "item-1",
		PublishedAt:    &published,
		RawContentHTML: "<div><script>var x = 1; var y = 2; var z = 3;</script><p>only two</p></div>",
	}

	reason := filterer.Run(item, now)
	if reason != ReasonTooShort {
		t.Errorf("Expected script contents to be excluded from the count, got %q", reason)
	}
}
