package store

import "errors"

var (
	// ErrNotFound is returned when a key is not present in the store.
	ErrNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned when a stored value does not match the
	// requested type.
	ErrTypeMismatch = errors.New("type mismatch")
)
