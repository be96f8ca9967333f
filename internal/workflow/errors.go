package workflow

import "errors"

// Sentinel errors for workflow operations. Handlers map these to HTTP
// status codes with errors.Is.
var (
	// ErrForbidden means the actor lacks role or ownership for the operation,
	// e.g. a non-creator submitting a draft or an approver mismatch.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrInvalidState means the operation targets a record whose status makes
	// it illegal, e.g. deciding an approval that is no longer pending.
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrInconsistent means a dual write was partially applied and the
	// compensating rollback failed. Fatal to the request; both record ids
	// are logged for manual reconciliation.
	ErrInconsistent = errors.New("workflow state inconsistency detected")
)
