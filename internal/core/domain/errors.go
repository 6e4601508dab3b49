package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidID indicates an entry identifier could not be parsed.
	ErrInvalidID = errors.New("invalid entry id")

	// ErrNoEntryType indicates an entry was constructed without a type
	// and without metadata that could supply one.
	ErrNoEntryType = errors.New("entry requires a type or metadata")

	// ErrNoDocument indicates an entry carries no sequence document.
	ErrNoDocument = errors.New("entry has no sequence document")
)
