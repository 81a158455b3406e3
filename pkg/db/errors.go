package db

import "errors"

// ErrNotFound reports that a write targeted a record that does not exist.
// Implementations wrap it so callers can match with errors.Is.
var ErrNotFound = errors.New("record not found")
