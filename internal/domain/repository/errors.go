package repository

import "errors"

// Store error kinds returned by every repository implementation.
// Callers match them with errors.Is.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalid   = errors.New("invalid record")
)
