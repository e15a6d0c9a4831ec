package library

import (
	"strings"
	"time"
)

// Item represents one catalog entry together with its total and currently
// available copy counts. Items are created by the bulk load at startup and
// only their AvailCopies field changes afterwards.
type Item struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"` // empty when unknown
	Year        uint32 `json:"year"`
	Edition     string `json:"edition"`
	Desc        string `json:"desc"`
	Format      string `json:"format"`
	Copies      uint32 `json:"copies"`
	AvailCopies uint32 `json:"avail_copies"`
	Ratings     uint32 `json:"ratings"`
}

// RenewFactor derives the number of months one loan period runs from the
// item's format. Unknown formats get no loan period at all.
func (it Item) RenewFactor() uint32 {
	switch strings.ToLower(it.Format) {
	case "book":
		return 1
	case "movie":
		return 2
	default:
		return 0
	}
}

// Checkout is the snapshot taken when an item is issued. It copies the title
// so catalog edits after issuance never rewrite an outstanding loan.
type Checkout struct {
	Title       string    `json:"title"`
	ItemID      uint32    `json:"item_id"`
	RenewFactor uint32    `json:"renew_factor"`
	DueDate     time.Time `json:"due_date"`
	Notice      bool      `json:"notice"`
}

// Renew pushes the due date forward by the renewal factor.
func (c *Checkout) Renew() {
	c.DueDate = c.DueDate.AddDate(0, int(c.RenewFactor), 0)
}

// checkoutFor builds the loan snapshot for an item issued at now. The first
// renewal establishes the initial due date, so a zero-factor format falls due
// at issuance time.
func checkoutFor(it Item, now time.Time) Checkout {
	co := Checkout{
		Title:       it.Title,
		ItemID:      it.ID,
		RenewFactor: it.RenewFactor(),
		DueDate:     now,
	}
	co.Renew()
	return co
}

// Member represents a registered library member and the loans they hold,
// keyed by item id.
type Member struct {
	ID        uint32              `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Items     map[uint32]Checkout `json:"items"`
}

// Name joins the optional first and last names for display.
func (m *Member) Name() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}
