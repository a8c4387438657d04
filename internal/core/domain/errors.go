package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetchFailed indicates a remote download did not complete.
	// An import aborted by this error leaves no partial state behind.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnknownScheme indicates a URI that does not use the akl scheme.
	ErrUnknownScheme = errors.New("unknown protocol scheme")

	// ErrUnknownCommand indicates an akl URI whose authority is not one
	// of the three known command selectors.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingField indicates a required query parameter was absent
	// when decoding a command URI.
	ErrMissingField = errors.New("missing required field")

	// ErrNoChecksum indicates a filename derivation was attempted on a
	// record whose checksum has not been assigned yet.
	ErrNoChecksum = errors.New("record has no checksum")
)
