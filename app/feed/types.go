package feed

import (
	"time"
)

// RawItem is one feed entry exactly as the upstream delivered it.
// Defensive multi-field lookups live exclusively in the Normalizer;
// nothing downstream ever touches a RawItem.
type RawItem map[string]any

// Item is the canonical representation of one feed entry. Created once
// per run, read-only afterwards.
type Item struct {
	ID             string
	Title          string
	URL            string     // empty = no resolvable URL
	PublishedAt    *time.Time // nil = no parseable timestamp
	RawContentHTML string     // bundled body content, may be empty

	FeedOrder int // position in the upstream feed, used for stable tie-breaks
}

// RejectReason classifies why the filterer (or the pipeline) dropped an
// item. Policy treats all reasons identically; the run summary keeps
// them apart.
type RejectReason string

const (
	ReasonNone     RejectReason = ""
	ReasonNoDate   RejectReason = "no_date"
	ReasonTooOld   RejectReason = "too_old"
	ReasonTooShort RejectReason = "too_short"
	ReasonSeen     RejectReason = "already_seen"
)

// Permanent reports whether the rejection can never resolve itself: an
// item without a date, or one already past the window, only gets older.
func (r RejectReason) Permanent() bool {
	return r == ReasonNoDate || r == ReasonTooOld
}
