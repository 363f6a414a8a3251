package database

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func testRecord(id string, draftedAt time.Time) DraftRecord {
	published := draftedAt.Add(-1 * time.Hour)
	return DraftRecord{
		ID:          id,
		Title:       "Story " + id,
		Link:        "https://example.com/" + id,
		PublishedAt: &published,
		Filename:    "2026-08-28-story-" + id + ".md",
		WordCount:   150,
		DraftedAt:   draftedAt,
	}
}

func TestDraftRepository_RecordDraft_InsertAndCount(t *testing.T) {
	repo := NewDraftRepository(testDB(t))
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	if err := repo.RecordDraft(testRecord("a", now)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := repo.RecordDraft(testRecord("b", now)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	count, err := repo.CountDrafts()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 archived drafts, got %d", count)
	}
}

func TestDraftRepository_RecordDraft_UpsertSameID(t *testing.T) {
	repo := NewDraftRepository(testDB(t))
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	if err := repo.RecordDraft(testRecord("a", now)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated := testRecord("a", now.Add(time.Hour))
	updated.WordCount = 200
	if err := repo.RecordDraft(updated); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	count, err := repo.CountDrafts()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 1 {
		t.Errorf("Expected the upsert to keep one row, got %d", count)
	}

	records, err := repo.GetRecentDrafts(10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 1 || records[0].WordCount != 200 {
		t.Errorf("Expected the updated row, got %+v", records)
	}
}

func TestDraftRepository_GetRecentDrafts_NewestFirst(t *testing.T) {
	repo := NewDraftRepository(testDB(t))
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"oldest", "middle", "newest"} {
		if err := repo.RecordDraft(testRecord(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	records, err := repo.GetRecentDrafts(2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "newest" || records[1].ID != "middle" {
		t.Errorf("Expected [newest middle], got [%s %s]", records[0].ID, records[1].ID)
	}
}
