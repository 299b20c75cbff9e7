package model

import "errors"

var (
	// ErrNotFound is returned by stores when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already registered")
)
