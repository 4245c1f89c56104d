package concept

import "errors"

var (
	// ErrConceptNotFound indicates the concept doesn't exist in the project.
	ErrConceptNotFound = errors.New("concept not found")
	// ErrTaskNotFound indicates the task doesn't exist on the concept.
	ErrTaskNotFound = errors.New("task not found")
	// ErrFeedbackNotFound indicates the feedback entry doesn't exist.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrInvalidInput indicates invalid concept input.
	ErrInvalidInput = errors.New("invalid concept input")
)
