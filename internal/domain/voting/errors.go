package voting

import "errors"

var (
	// ErrConceptNotFound indicates the concept doesn't exist in the project.
	ErrConceptNotFound = errors.New("concept not found")
	// ErrNoOpenWindow indicates the project has no voting window to close.
	ErrNoOpenWindow = errors.New("no voting window open")
	// ErrInvalidInput indicates invalid voting input.
	ErrInvalidInput = errors.New("invalid voting input")
)
