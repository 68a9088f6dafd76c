package models

import "github.com/pkg/errors"

// Failure classes of the assessment pipeline. Callers wrap these with context
// via errors.Wrap and check them with errors.Is.
var (
	// ErrGenerationFailure - the AI collaborator errored or returned empty
	// or malformed data; fatal to the composition attempt.
	ErrGenerationFailure = errors.New("AI question generation failed")

	// ErrInvalidTemplate - a template with zero questions reached scoring.
	ErrInvalidTemplate = errors.New("template has no questions")

	// ErrNotFound - a link or id resolved to nothing in the store.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSubmission - finish invoked for an already completed
	// candidate; callers treat it as a no-op and return the existing result.
	ErrDuplicateSubmission = errors.New("assessment already submitted")
)
