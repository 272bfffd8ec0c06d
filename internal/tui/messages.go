package tui

import (
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/service"
)

// Message types for the TUI

// StateChangedMsg carries the latest state published by the service
type StateChangedMsg struct {
	Snapshot domain.Snapshot
}

// TodosLoadedMsg signals that the initial load finished
type TodosLoadedMsg struct {
	Err error
}

// TodoCreatedMsg signals the outcome of a creation
type TodoCreatedMsg struct {
	Item domain.Item
	Err  error
}

// TodoToggledMsg signals the outcome of a single toggle
type TodoToggledMsg struct {
	ID  int
	Err error
}

// TodoRenamedMsg signals the outcome of an edit submission
type TodoRenamedMsg struct {
	ID  int
	Err error
}

// TodoDeletedMsg signals the outcome of a delete. FromEdit is set when the
// delete came from submitting an empty title.
type TodoDeletedMsg struct {
	Result   service.DeleteResult
	FromEdit bool
}

// AllToggledMsg signals that every toggle-all request settled
type AllToggledMsg struct {
	Err error
}

// CompletedClearedMsg signals that clear-completed settled
type CompletedClearedMsg struct {
	Result service.ClearResult
}

// ClearErrorMsg asks to hide the error raised with Seq
type ClearErrorMsg struct {
	Seq uint64
}

// TickMsg advances the spinners
type TickMsg struct{}
