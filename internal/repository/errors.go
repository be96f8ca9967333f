package repository

import "errors"

// Store-level sentinel errors. Both the GORM and the in-memory
// implementations return these so business logic never inspects
// backend-specific errors.
var (
	ErrNotFound = errors.New("record not found")

	// ErrNotPending means the compare-and-set on an approval's pending status
	// found the record already decided. Exactly one of two racing decisions
	// receives it.
	ErrNotPending = errors.New("approval is not pending")
)
