package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "queries.db"), true)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndListQueries(t *testing.T) {
	db := openTestDB(t)

	questions := []QueryRecord{
		{Question: "What is the price of AAPL?", Category: "stock"},
		{Question: "Latest news on Apple", Category: "news"},
		{Question: "  Show my portfolio  ", Category: "portfolio"},
	}
	for i := range questions {
		if err := db.SaveQuery(&questions[i]); err != nil {
			t.Fatalf("save query: %v", err)
		}
	}

	rows, total, err := db.ListQueries(0, 10)
	if err != nil {
		t.Fatalf("list queries: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3 got %d", total)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows got %d", len(rows))
	}
	// Newest first.
	if rows[0].Question != "Show my portfolio" {
		t.Fatalf("expected trimmed newest row, got %q", rows[0].Question)
	}
	if rows[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated")
	}
}

func TestListQueriesPagination(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		if err := db.SaveQuery(&QueryRecord{Question: "question number " + string(rune('a'+i)), Category: "general"}); err != nil {
			t.Fatalf("save query: %v", err)
		}
	}

	rows, total, err := db.ListQueries(2, 2)
	if err != nil {
		t.Fatalf("list queries: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5 got %d", total)
	}
	if len(rows) != 2 {
		t.Fatalf("expected page of 2 got %d", len(rows))
	}
}

func TestSaveQueryNil(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveQuery(nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}
