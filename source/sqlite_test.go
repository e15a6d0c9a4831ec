package source

import (
	"database/sql"
	"path/filepath"
	"testing"

	"lms/library"
)

func buildCatalogDB(t *testing.T, items []library.Item) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := WriteItems(db, items); err != nil {
		t.Fatalf("write items: %v", err)
	}
	return path
}

func TestSQLiteRoundTrip(t *testing.T) {
	want := []library.Item{
		{ID: 7, Title: "Dune", Author: "Frank Herbert", Year: 1965, Edition: "1st",
			Desc: "Sci-fi classic", Format: "book", Copies: 2, AvailCopies: 2, Ratings: 5},
		{ID: 8, Title: "Alien", Year: 1979, Desc: "Horror in space",
			Format: "movie", Copies: 3, AvailCopies: 1, Ratings: 4},
	}
	path := buildCatalogDB(t, want)

	items, err := (SQLite{Path: path, Log: quietLogger()}).Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}

	byID := map[uint32]library.Item{items[0].ID: items[0], items[1].ID: items[1]}
	for _, w := range want {
		if byID[w.ID] != w {
			t.Fatalf("item %d: want %+v, got %+v", w.ID, w, byID[w.ID])
		}
	}
}

func TestWriteItemsReplacesDuplicateID(t *testing.T) {
	first := library.Item{ID: 7, Title: "Dune", Format: "book", Copies: 1, AvailCopies: 1}
	second := first
	second.Title = "Dune Messiah"
	path := buildCatalogDB(t, []library.Item{first, second})

	items, err := (SQLite{Path: path, Log: quietLogger()}).Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Dune Messiah" {
		t.Fatalf("want last write to win, got %+v", items)
	}
}

func TestSQLiteMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")
	if _, err := (SQLite{Path: path, Log: quietLogger()}).Items(); err == nil {
		t.Fatal("want error for missing database")
	}
}
