package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid transition", ErrInvalidTransition},
		{"forbidden", ErrForbidden},
		{"invalid argument", ErrInvalidArgument},
		{"concurrency conflict", ErrConcurrencyConflict},
		{"ledger violation", ErrLedgerViolation},
		{"upstream failure", ErrUpstreamFailure},
		{"already approved", ErrAlreadyApproved},
		{"duplicate review", ErrDuplicateReview},
		{"insufficient funds", ErrInsufficientFunds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestTransitionErrorUnwraps(t *testing.T) {
	err := &TransitionError{
		Entity: "order",
		From:   "processing",
		Action: "cancel",
		Role:   "buyer",
		Reason: ErrInvalidTransition,
	}

	if !stdErrors.Is(err, ErrInvalidTransition) {
		t.Fatal("expected TransitionError to unwrap to ErrInvalidTransition")
	}
	msg := err.Error()
	for _, part := range []string{"order", "processing", "cancel", "buyer"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("expected message to mention %q, got %q", part, msg)
		}
	}
}
