package library

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

// stubSource feeds pre-parsed items into Load, standing in for the CSV and
// SQLite collaborators.
type stubSource struct {
	items []Item
	err   error
}

func (s stubSource) Items() ([]Item, error) { return s.items, s.err }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testItem(id uint32) Item {
	return Item{
		ID:          id,
		Title:       "Test Title",
		Author:      "Test Author",
		Year:        1999,
		Format:      "book",
		Copies:      3,
		AvailCopies: 2,
		Ratings:     4,
	}
}

func TestLoadPopulatesCatalog(t *testing.T) {
	cat := NewCatalog(quietLogger())
	n, err := cat.Load(stubSource{items: []Item{testItem(1), testItem(2)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 2 || cat.Len() != 2 {
		t.Fatalf("want 2 items loaded, got n=%d len=%d", n, cat.Len())
	}

	it, err := cat.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.Title != "Test Title" || it.AvailCopies != 2 {
		t.Fatalf("unexpected item: %+v", it)
	}

	// Copy-count invariant holds for every loaded item.
	for _, it := range cat.Items() {
		if it.AvailCopies > it.Copies {
			t.Fatalf("item %d violates invariant: %d > %d", it.ID, it.AvailCopies, it.Copies)
		}
	}
}

func TestLoadSkipsInvalidItems(t *testing.T) {
	overdrawn := testItem(2)
	overdrawn.AvailCopies = overdrawn.Copies + 1
	untitled := testItem(3)
	untitled.Title = ""

	cat := NewCatalog(quietLogger())
	n, err := cat.Load(stubSource{items: []Item{testItem(1), overdrawn, untitled}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 1 || cat.Len() != 1 {
		t.Fatalf("want 1 item loaded, got n=%d len=%d", n, cat.Len())
	}
	if _, err := cat.Get(2); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("overdrawn item should be skipped, got %v", err)
	}
}

func TestLoadFailsWhenNothingLoads(t *testing.T) {
	untitled := testItem(1)
	untitled.Title = ""

	cat := NewCatalog(quietLogger())
	if _, err := cat.Load(stubSource{items: []Item{untitled}}); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("want ErrLoadFailed, got %v", err)
	}
	if _, err := cat.Load(stubSource{}); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("want ErrLoadFailed on empty source, got %v", err)
	}
}

func TestLoadSourceError(t *testing.T) {
	cat := NewCatalog(quietLogger())
	if _, err := cat.Load(stubSource{err: errors.New("disk gone")}); err == nil {
		t.Fatal("want error from failing source")
	}
}

func TestLoadDuplicateIDLastWriteWins(t *testing.T) {
	first := testItem(7)
	second := testItem(7)
	second.Title = "Second Edition"

	cat := NewCatalog(quietLogger())
	if _, err := cat.Load(stubSource{items: []Item{first, second}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("want 1 item, got %d", cat.Len())
	}
	it, _ := cat.Get(7)
	if it.Title != "Second Edition" {
		t.Fatalf("want last write to win, got %q", it.Title)
	}
}

func TestGetMissingItem(t *testing.T) {
	cat := NewCatalog(quietLogger())
	if _, err := cat.Get(99); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound, got %v", err)
	}
}
