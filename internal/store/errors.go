package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when metadata is required but the
	// database has never been initialized
	ErrNotInitialized = errors.New("database not initialized - run 'clipd init' first")

	// ErrAlreadyInitialized is returned when Initialize is called on a
	// database that already holds metadata
	ErrAlreadyInitialized = errors.New("database already initialized")

	// ErrNotFound is returned when an entry id does not exist
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateID is returned when inserting an entry whose id is
	// already present
	ErrDuplicateID = errors.New("duplicate entry id")
)

// CorruptEntryError reports a stored record that could not be decoded.
// Bulk operations skip the record and keep going; the error carries the
// id so callers can surface a warning.
type CorruptEntryError struct {
	ID  string
	Err error
}

func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("corrupt entry %s: %v", e.ID, e.Err)
}

func (e *CorruptEntryError) Unwrap() error {
	return e.Err
}
