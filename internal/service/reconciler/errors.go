package reconciler

import "github.com/pkg/errors"

// Guard errors surfaced to the caller as client errors. The current derived
// status is attached by the controller so the UI can self-correct.
var (
	ErrMissingLocation        = errors.New("location is required for office mode")
	ErrDuplicateCheckIn       = errors.New("already checked in today")
	ErrDuplicateCheckOut      = errors.New("already checked out today")
	ErrCheckOutWithoutCheckIn = errors.New("cannot check out without checking in first")
)
