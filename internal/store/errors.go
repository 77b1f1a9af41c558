package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these to HTTP status
// codes with errors.Is.
var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists is returned when a registration hits the unique email
	// constraint.
	ErrEmailExists = errors.New("email already exists")
)
