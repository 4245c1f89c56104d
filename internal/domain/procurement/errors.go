package procurement

import "errors"

var (
	// ErrNoOrder indicates the project has no order to update.
	ErrNoOrder = errors.New("no order exists")
	// ErrNoActiveConcept indicates no concept is active for production.
	ErrNoActiveConcept = errors.New("no active concept")
	// ErrInvalidInput indicates invalid procurement input.
	ErrInvalidInput = errors.New("invalid procurement input")
)
