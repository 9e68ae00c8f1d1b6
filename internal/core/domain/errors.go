package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidTopic indicates the requested topic is not in the
	// configured topic list.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNoContent indicates the knowledge source returned no documents
	// for the requested topic.
	ErrNoContent = errors.New("no content found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPageMissing indicates a requested page does not exist.
	ErrPageMissing = errors.New("page does not exist")
)
