package valueobject

import "errors"

// Sentinel errors returned by the domain layer. Callers match them with
// errors.Is; the surrounding message names the invariant that was violated.
var (
	// ErrValidation marks bad input rejected before any state change.
	ErrValidation = errors.New("validation error")

	// ErrInvalidStatusTransition marks an operation that is not legal from the
	// aggregate's current state.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrMissingCollateral marks an approval attempted on a product that
	// requires collateral before any item has been approved.
	ErrMissingCollateral = errors.New("missing approved collateral")

	// ErrDuplicateTransaction marks a repayment whose transaction reference has
	// already been recorded for the same loan.
	ErrDuplicateTransaction = errors.New("duplicate transaction reference")

	// ErrConcurrencyConflict marks an optimistic-lock failure; the caller may
	// re-read and retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrLoanFinalized marks a mutation attempted on records belonging to a
	// loan that has reached a terminal state.
	ErrLoanFinalized = errors.New("loan is finalized")

	// ErrNotFound marks a lookup for a record that does not exist.
	ErrNotFound = errors.New("not found")
)
