package library

import (
	"sort"
	"sync"
	"time"
)

// Clock supplies issue timestamps. Injected so due dates are deterministic in
// tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Ledger owns the whole library state: the catalog plus members and their
// outstanding loans. Every mutation takes the write side of the lock for the
// duration of the single operation; display projections take the read side.
type Ledger struct {
	mu      sync.RWMutex
	catalog *Catalog
	members map[uint32]*Member
	clock   Clock
}

// NewLedger wraps catalog and starts with no registered members.
func NewLedger(catalog *Catalog) *Ledger {
	return &Ledger{
		catalog: catalog,
		members: make(map[uint32]*Member),
		clock:   realClock{},
	}
}

// LoadCatalog performs the startup bulk load under the write lock.
func (l *Ledger) LoadCatalog(src ItemSource) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.catalog.Load(src)
}

// ------------------ Members ------------------

// AddMember registers a member up front and returns the assigned id. Ids are
// handed out sequentially and never reused within a session.
func (l *Ledger) AddMember(firstName, lastName string) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addMemberLocked(firstName, lastName).ID
}

func (l *Ledger) addMemberLocked(firstName, lastName string) *Member {
	m := &Member{
		ID:        uint32(len(l.members)) + 1,
		FirstName: firstName,
		LastName:  lastName,
		Items:     make(map[uint32]Checkout),
	}
	l.members[m.ID] = m
	return m
}

// ------------------ Circulation ------------------

// IssueToMember checks an item out to an already registered member and
// returns the loan snapshot. Re-issuing an item the member still holds is
// rejected; Renew is the explicit path for extending a loan.
func (l *Ledger) IssueToMember(itemID, memberID uint32) (Checkout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.members[memberID]
	if !ok {
		return Checkout{}, ErrMemberNotFound
	}
	return l.issueLocked(itemID, m)
}

// IssueToNewMember registers a member and checks the item out to them in one
// step. The item is vetted first so a failed issue never leaves a member
// behind.
func (l *Ledger) IssueToNewMember(itemID uint32, firstName, lastName string) (uint32, Checkout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, ok := l.catalog.items[itemID]
	if !ok {
		return 0, Checkout{}, ErrItemNotFound
	}
	if it.AvailCopies == 0 {
		return 0, Checkout{}, ErrNoCopiesAvailable
	}

	m := l.addMemberLocked(firstName, lastName)
	co, err := l.issueLocked(itemID, m)
	if err != nil {
		return 0, Checkout{}, err
	}
	return m.ID, co, nil
}

// issueLocked decrements availability and records the loan snapshot. The
// caller holds the write lock.
func (l *Ledger) issueLocked(itemID uint32, m *Member) (Checkout, error) {
	it, ok := l.catalog.items[itemID]
	if !ok {
		return Checkout{}, ErrItemNotFound
	}
	if _, held := m.Items[itemID]; held {
		return Checkout{}, ErrAlreadyCheckedOut
	}
	if it.AvailCopies == 0 {
		return Checkout{}, ErrNoCopiesAvailable
	}

	it.AvailCopies--
	l.catalog.items[itemID] = it

	co := checkoutFor(it, l.clock.Now())
	m.Items[itemID] = co
	return co, nil
}

// Renew extends an outstanding loan's due date by the item's renewal factor
// and returns the updated snapshot. Availability is untouched.
func (l *Ledger) Renew(itemID, memberID uint32) (Checkout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.members[memberID]
	if !ok {
		return Checkout{}, ErrMemberNotFound
	}
	co, ok := m.Items[itemID]
	if !ok {
		return Checkout{}, ErrItemNotCheckedOut
	}

	co.Renew()
	m.Items[itemID] = co
	return co, nil
}

// Return removes the member's loan, puts the copy back into circulation and
// returns the updated catalog item for display. Nothing is mutated when any
// check fails.
func (l *Ledger) Return(itemID, memberID uint32) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.members[memberID]
	if !ok {
		return Item{}, ErrMemberNotFound
	}
	if _, held := m.Items[itemID]; !held {
		return Item{}, ErrItemNotCheckedOut
	}
	// Items are never deleted during a session, so this only guards against
	// a missing catalog entry.
	it, ok := l.catalog.items[itemID]
	if !ok {
		return Item{}, ErrItemNotFound
	}

	delete(m.Items, itemID)
	it.AvailCopies++
	l.catalog.items[itemID] = it
	return it, nil
}

// ------------------ Display projections ------------------

// Loan identifies one outstanding checkout for display.
type Loan struct {
	ItemID  uint32    `json:"item_id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// MemberView is a read-only projection of a member and their current loans.
type MemberView struct {
	ID    uint32 `json:"id"`
	Name  string `json:"name"`
	Loans []Loan `json:"loans"`
}

// Members projects every member with their outstanding loans, ordered by
// member id.
func (l *Ledger) Members() []MemberView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	views := make([]MemberView, 0, len(l.members))
	for _, m := range l.members {
		v := MemberView{
			ID:    m.ID,
			Name:  m.Name(),
			Loans: make([]Loan, 0, len(m.Items)),
		}
		for _, co := range m.Items {
			v.Loans = append(v.Loans, Loan{ItemID: co.ItemID, Title: co.Title, DueDate: co.DueDate})
		}
		sort.Slice(v.Loans, func(i, j int) bool { return v.Loans[i].ItemID < v.Loans[j].ItemID })
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// Items returns a snapshot of the catalog for display.
func (l *Ledger) Items() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog.Items()
}

// Item looks up a single catalog entry.
func (l *Ledger) Item(id uint32) (Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog.Get(id)
}
