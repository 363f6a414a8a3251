package database

import (
	"time"
)

// DraftRecord is one archived draft: which item produced which file,
// when. The archive is pure history; the JSON seen-set remains the
// dedup authority.
type DraftRecord struct {
	ID          string // canonical item id
	Title       string
	Link        string
	PublishedAt *time.Time
	Filename    string
	WordCount   int
	DraftedAt   time.Time
}
