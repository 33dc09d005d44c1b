package ports

import "errors"

// Error taxonomy shared by the domain packages and adapters.
var (
	// ErrInvalidArgument marks a programming error in the caller: an unknown
	// kind, sort key or direction, or a page size below one.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is the soft "no match" outcome of a name lookup.
	ErrNotFound = errors.New("not found")

	// ErrPersistenceUnavailable marks a durable storage read or write
	// failure. It is recovered locally and surfaced as a warning.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
