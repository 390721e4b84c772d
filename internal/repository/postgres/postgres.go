package postgres

import "github.com/pkg/errors"

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("row not found")
