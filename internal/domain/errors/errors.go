package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition signals the requested action is not legal
	// from the aggregate's current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrForbidden signals the actor role may not perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument covers malformed payloads and missing reasons.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConcurrencyConflict means the aggregate version moved under the
	// caller; re-read and retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrLedgerViolation marks a broken monetary invariant. It is never
	// retried automatically and always aborts the transaction.
	ErrLedgerViolation = errors.New("ledger violation")
	// ErrUpstreamFailure wraps payment gateway and notifier errors; the
	// transition is rolled back and reported as retryable.
	ErrUpstreamFailure = errors.New("upstream failure")
	ErrAlreadyApproved = errors.New("milestone already approved")
	ErrDuplicateReview = errors.New("review already submitted")
	// ErrInsufficientFunds is a ledger violation: releasing more than
	// the project's remaining budget would break budget conservation.
	ErrInsufficientFunds = fmt.Errorf("insufficient remaining budget: %w", ErrLedgerViolation)
)

// TransitionError carries the denied transition details.
type TransitionError struct {
	Entity string
	From   string
	Action string
	Role   string
	Reason error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: action %q by %s denied: %v", e.Entity, e.From, e.Action, e.Role, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return e.Reason
}
