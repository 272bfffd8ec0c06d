package domain

import "slices"

// Notice is the currently displayed error. Seq increases every time a
// notice is raised so a delayed dismissal only clears the notice it was
// scheduled for.
type Notice struct {
	Kind ErrorKind
	Seq  uint64
}

// Active returns true if an error is being shown
func (n Notice) Active() bool { return n.Kind != ErrorNone }

// Snapshot is an immutable copy of the todo state at one point in time.
type Snapshot struct {
	Items      []Item // Persisted items in server order
	Pending    *Draft // Placeholder of the creation in flight, if any
	Processing []int  // IDs with a request in flight (sorted)
	Notice     Notice // Active error, if any
	Loading    bool   // Initial load in progress
	Version    uint64 // Increases with every state change
}

// IsProcessing returns true if id has a request in flight
func (s Snapshot) IsProcessing(id int) bool {
	_, ok := slices.BinarySearch(s.Processing, id)
	return ok
}

// AllCompleted returns true if every item is completed (vacuously true when empty)
func (s Snapshot) AllCompleted() bool {
	for _, item := range s.Items {
		if !item.Completed {
			return false
		}
	}
	return true
}

// HasCompleted returns true if at least one item is completed
func (s Snapshot) HasCompleted() bool {
	for _, item := range s.Items {
		if item.Completed {
			return true
		}
	}
	return false
}

// ItemsLeft returns the number of active items
func (s Snapshot) ItemsLeft() int {
	n := 0
	for _, item := range s.Items {
		if !item.Completed {
			n++
		}
	}
	return n
}

// Find returns the item with the given id
func (s Snapshot) Find(id int) (Item, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Entries returns the persisted items followed by the pending draft
func (s Snapshot) Entries() []Entry {
	return Entries(s.Items, s.Pending)
}

// StateObserver receives a snapshot after every state change.
type StateObserver interface {
	OnStateChange(snapshot Snapshot)
}

// NoOpObserver discards state changes (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnStateChange(Snapshot) {}
