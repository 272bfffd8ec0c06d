package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/todos/internal/domain"
)

// Operation names used in OpError and logs
const (
	OpLoad   = "load"
	OpCreate = "create"
	OpUpdate = "update"
	OpRename = "rename"
	OpDelete = "delete"
)

// OpError is returned by operations that fail after the service has already
// recorded the user-facing error kind. Callers use it to keep their own
// local state (form input, edit mode) and never to pick a message.
type OpError struct {
	Op   string
	ID   int
	Kind domain.ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	if e.ID != domain.PendingID {
		return fmt.Sprintf("%s todo %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s todo: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// KindOf extracts the error kind from err, or ErrorUnknown
func KindOf(err error) domain.ErrorKind {
	if err == nil {
		return domain.ErrorNone
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return domain.ErrorUnknown
}

// classify maps a repository failure to the kind shown to the user.
// Connectivity and HTTP-level failures get the operation's fallback kind;
// anything else (malformed responses, programming errors) is Unknown.
func classify(err error, fallback domain.ErrorKind) domain.ErrorKind {
	switch {
	case errors.Is(err, domain.ErrServerOffline),
		errors.Is(err, domain.ErrUnexpectedStatus),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fallback
	default:
		return domain.ErrorUnknown
	}
}
