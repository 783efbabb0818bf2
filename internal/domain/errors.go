package domain

import "errors"

// Domain error kinds. The request layer maps these to user-visible
// responses; anything else wrapping out of the repositories is an
// infrastructure failure.
var (
	// ErrNotFound indicates the requested entity does not exist or is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input: negative amounts, a rating
	// outside the valid range, an inverted date range.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyGraded indicates an assignment whose job rating was already
	// set. The rating transitions null to value exactly once.
	ErrAlreadyGraded = errors.New("assignment already graded")

	// ErrConflict indicates a concurrent-update conflict that survived the
	// transaction retry budget.
	ErrConflict = errors.New("concurrent update conflict")
)
