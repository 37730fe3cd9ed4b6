package repository

import "errors"

var (
	// ErrNotFound is returned by lookups when no row matches. Callers branch
	// with errors.Is rather than inspecting error text.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)
