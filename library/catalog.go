package library

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ItemSource supplies catalog rows parsed by an external collaborator such as
// a CSV file or SQLite database. Sources skip rows they cannot parse; the
// catalog applies its own invariants on top.
type ItemSource interface {
	Items() ([]Item, error)
}

// Catalog is the in-memory item store keyed by item id. It has no locking of
// its own; the Ledger serializes all access to it.
type Catalog struct {
	items map[uint32]Item
	log   *logrus.Logger
}

// NewCatalog returns an empty catalog logging diagnostics to log.
func NewCatalog(log *logrus.Logger) *Catalog {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Catalog{
		items: make(map[uint32]Item),
		log:   log,
	}
}

// Load populates the catalog from src. Items that violate the copy-count
// invariant or lack a title are skipped with a diagnostic; a duplicate id
// overwrites the earlier entry. Load fails only when the source cannot be
// read or no item survives validation.
func (c *Catalog) Load(src ItemSource) (int, error) {
	items, err := src.Items()
	if err != nil {
		return 0, fmt.Errorf("read catalog source: %w", err)
	}

	loaded := 0
	for _, it := range items {
		if err := validateItem(it); err != nil {
			c.log.WithField("item_id", it.ID).Warnf("skipping catalog row: %v", err)
			continue
		}
		c.items[it.ID] = it
		loaded++
	}
	if loaded == 0 {
		return 0, ErrLoadFailed
	}

	c.log.Infof("loaded %d items into catalog", loaded)
	return loaded, nil
}

func validateItem(it Item) error {
	if it.Title == "" {
		return fmt.Errorf("item %d has an empty title", it.ID)
	}
	if it.AvailCopies > it.Copies {
		return fmt.Errorf("item %d has avail_copies %d exceeding copies %d", it.ID, it.AvailCopies, it.Copies)
	}
	return nil
}

// Get returns a copy of the item with the given id.
func (c *Catalog) Get(id uint32) (Item, error) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return it, nil
}

// Items returns a snapshot of every catalog entry. Order follows map
// iteration and is not stable between calls.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	return out
}

// Len reports how many items the catalog holds.
func (c *Catalog) Len() int { return len(c.items) }
