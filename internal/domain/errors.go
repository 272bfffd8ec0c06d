package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested todo does not exist
	ErrItemNotFound = errors.New("todo not found")

	// ErrServerOffline indicates the todo server is unreachable
	ErrServerOffline = errors.New("todo server is unreachable")

	// ErrUnexpectedStatus indicates the server answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrEmptyTitle indicates a title that is empty after trimming
	ErrEmptyTitle = errors.New("title should not be empty")
)

// ErrorKind is the user-facing error shown in the notification area.
// At most one is active at a time.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorUnknown
	ErrorUnableToLoad
	ErrorTitleShouldNotBeEmpty
	ErrorUnableToAdd
	ErrorUnableToDelete
	ErrorUnableToUpdate
)

// String returns the message displayed to the user
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return ""
	case ErrorUnableToLoad:
		return "Unable to load todos"
	case ErrorTitleShouldNotBeEmpty:
		return "Title should not be empty"
	case ErrorUnableToAdd:
		return "Unable to add a todo"
	case ErrorUnableToDelete:
		return "Unable to delete a todo"
	case ErrorUnableToUpdate:
		return "Unable to update a todo"
	default:
		return "Something went wrong"
	}
}
