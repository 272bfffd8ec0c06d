package domain

import (
	"fmt"
	"strings"
)

// PendingID is the identifier used for an item that has not been persisted
// yet. The server never assigns it.
const PendingID = 0

// Item is a persisted todo as stored by the remote collection
type Item struct {
	ID        int    `json:"id"`        // Server-assigned identifier
	UserID    int    `json:"userId"`    // Owning user
	Title     string `json:"title"`     // Display title (trimmed)
	Completed bool   `json:"completed"` // Completion state
}

// Draft is the payload of a creation request
type Draft struct {
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Patch carries the fields of a partial update. Nil fields are not sent.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsEmpty returns true if the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply returns a copy of item with the patch applied
func (p Patch) Apply(item Item) Item {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	return item
}

// String renders the patch for logs, e.g. "title=milk completed=true"
func (p Patch) String() string {
	var parts []string
	if p.Title != nil {
		parts = append(parts, fmt.Sprintf("title=%q", *p.Title))
	}
	if p.Completed != nil {
		parts = append(parts, fmt.Sprintf("completed=%t", *p.Completed))
	}
	return strings.Join(parts, " ")
}

// EntryKind distinguishes rows in the rendered list
type EntryKind int

const (
	EntryPersisted EntryKind = iota
	EntryPending
)

// Entry is a row of the list as the UI sees it: either a persisted item or
// the placeholder of a creation still in flight.
type Entry struct {
	Kind  EntryKind
	Item  Item  // Set when Kind == EntryPersisted
	Draft Draft // Set when Kind == EntryPending
}

// PersistedEntry wraps a stored item
func PersistedEntry(item Item) Entry {
	return Entry{Kind: EntryPersisted, Item: item}
}

// PendingEntry wraps a draft whose creation is in flight
func PendingEntry(draft Draft) Entry {
	return Entry{Kind: EntryPending, Draft: draft}
}

func (e Entry) IsPending() bool { return e.Kind == EntryPending }

func (e Entry) ID() int {
	if e.Kind == EntryPending {
		return PendingID
	}
	return e.Item.ID
}

func (e Entry) Title() string {
	if e.Kind == EntryPending {
		return e.Draft.Title
	}
	return e.Item.Title
}

func (e Entry) Completed() bool {
	if e.Kind == EntryPending {
		return e.Draft.Completed
	}
	return e.Item.Completed
}

// Entries builds the rendered rows: items in order, then the placeholder
func Entries(items []Item, pending *Draft) []Entry {
	entries := make([]Entry, 0, len(items)+1)
	for _, item := range items {
		entries = append(entries, PersistedEntry(item))
	}
	if pending != nil {
		entries = append(entries, PendingEntry(*pending))
	}
	return entries
}

// Filter selects which items are visible
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Filters lists the selections in display order
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// String returns the display name of the filter
func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles to the following filter
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// Match reports whether item is visible under the filter
func (f Filter) Match(item Item) bool {
	switch f {
	case FilterActive:
		return !item.Completed
	case FilterCompleted:
		return item.Completed
	default:
		return true
	}
}

// ParseFilter converts a config/flag value ("all", "active", "completed")
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter: %q", s)
	}
}
