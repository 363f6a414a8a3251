package database

import (
	"database/sql"
	"fmt"
	"time"
)

type DraftRepository struct {
	db *DB
}

func NewDraftRepository(db *DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// RecordDraft upserts the archive row for a drafted item. Re-drafting
// the same logical item updates its row instead of growing the table.
func (r *DraftRepository) RecordDraft(record DraftRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO drafted_items (
			id, title, link, published_at, filename, word_count, drafted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			link = excluded.link,
			published_at = excluded.published_at,
			filename = excluded.filename,
			word_count = excluded.word_count,
			drafted_at = excluded.drafted_at
	`, record.ID, record.Title, record.Link, record.PublishedAt,
		record.Filename, record.WordCount, record.DraftedAt)

	if err != nil {
		return fmt.Errorf("failed to record draft: %w", err)
	}

	return nil
}

// GetRecentDrafts returns the newest archive rows, most recent first.
func (r *DraftRepository) GetRecentDrafts(limit int) ([]DraftRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, title, COALESCE(link, ''), published_at, filename, word_count, drafted_at
		FROM drafted_items
		ORDER BY drafted_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent drafts: %w", err)
	}
	defer rows.Close()

	var records []DraftRecord
	for rows.Next() {
		var record DraftRecord
		var publishedAt sql.NullTime
		var draftedAt time.Time

		err := rows.Scan(&record.ID, &record.Title, &record.Link,
			&publishedAt, &record.Filename, &record.WordCount, &draftedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft record: %w", err)
		}

		if publishedAt.Valid {
			t := publishedAt.Time
			record.PublishedAt = &t
		}
		record.DraftedAt = draftedAt

		records = append(records, record)
	}

	return records, rows.Err()
}

// CountDrafts returns the total number of archived drafts.
func (r *DraftRepository) CountDrafts() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM drafted_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count drafts: %w", err)
	}
	return count, nil
}
