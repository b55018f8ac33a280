package service

import "errors"

var (
	// ErrCycleInProgress is returned by RunCycle when another cycle is
	// already executing.
	ErrCycleInProgress = errors.New("sync cycle already in progress")

	// ErrRetryExhausted is returned by Retry when the item has consumed
	// its full retry budget.
	ErrRetryExhausted = errors.New("retry budget exhausted")

	// ErrNotCancellable is returned by Cancel when the item is not in a
	// state that permits dismissal.
	ErrNotCancellable = errors.New("item cannot be cancelled in its current state")

	// ErrNotManualPending is returned by ResolveManually when the item is
	// not waiting for an external decision.
	ErrNotManualPending = errors.New("item is not awaiting a manual decision")

	// ErrUnknownDecision is returned by ResolveManually for a decision
	// value outside the supported set.
	ErrUnknownDecision = errors.New("unknown manual decision")
)
