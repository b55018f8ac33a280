// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrIllegalTransition is returned by SyncItem.Advance when the requested
// status change is not permitted by the lifecycle state machine. It marks
// a programming-level invariant violation: the caller is expected to log
// it as fatal rather than recover from it.
var ErrIllegalTransition = errors.New("illegal sync status transition")

// SyncStatus is the lifecycle state of a queued sync item.
type SyncStatus string

const (
	// StatusPending — queued, waiting to be picked up by a cycle.
	StatusPending SyncStatus = "pending"

	// StatusInFlight — currently being applied to the remote service.
	// At most one item per entity may ever hold this status.
	StatusInFlight SyncStatus = "in_flight"

	// StatusSynced — applied remotely and acknowledged. Terminal.
	StatusSynced SyncStatus = "synced"

	// StatusFailed — remote apply failed with a transient error; eligible
	// for retry with backoff until the retry budget is exhausted.
	StatusFailed SyncStatus = "failed"

	// StatusConflicted — concurrent remote edit detected; awaiting the
	// outcome of conflict resolution.
	StatusConflicted SyncStatus = "conflicted"

	// StatusManualPending — the conflict could not be auto-resolved and a
	// human decision is required before the entity can sync again.
	StatusManualPending SyncStatus = "manual_pending"

	// StatusSuperseded — the remote advanced past the local edit with no
	// concurrent change; the stale local operation was discarded. Terminal.
	StatusSuperseded SyncStatus = "superseded"

	// StatusDismissed — the user discarded the local change after a
	// conflict or terminal failure. Terminal.
	StatusDismissed SyncStatus = "dismissed"
)

// transitions is the allowed-successor table of the lifecycle machine.
// Statuses absent from the table are terminal.
var transitions = map[SyncStatus][]SyncStatus{
	StatusPending:       {StatusInFlight, StatusDismissed},
	StatusInFlight:      {StatusSynced, StatusFailed, StatusConflicted, StatusSuperseded},
	StatusFailed:        {StatusPending, StatusDismissed},
	StatusConflicted:    {StatusSynced, StatusManualPending},
	StatusManualPending: {StatusSynced, StatusDismissed},
}

// Terminal reports whether no transition leaves the status.
func (s SyncStatus) Terminal() bool {
	_, ok := transitions[s]
	return !ok
}

// CanAdvance reports whether the machine permits moving to next.
func (s SyncStatus) CanAdvance(next SyncStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SyncItem wraps a SyncOperation with its queue lifecycle state. Items are
// owned exclusively by the sync engine's queue: only the engine mutates
// them, and they are removed once terminally synced or explicitly
// dismissed after a failed/conflicted resolution.
type SyncItem struct {
	// ID uniquely identifies the queue item (uuid).
	ID string `json:"id"`

	// Operation is the immutable change this item carries.
	Operation SyncOperation `json:"operation"`

	// Status is the current lifecycle state.
	Status SyncStatus `json:"status"`

	// RetryCount is how many times a failed apply has been retried.
	RetryCount int `json:"retry_count"`

	// NextAttemptAt is the earliest instant the item becomes eligible for
	// another cycle after a transient failure (exponential backoff).
	// Zero means immediately eligible.
	NextAttemptAt time.Time `json:"next_attempt_at,omitempty"`

	// UpdatedAt is the time of the last status change.
	UpdatedAt time.Time `json:"updated_at"`
}

// Advance moves the item to next, enforcing the lifecycle table. The
// returned error wraps ErrIllegalTransition when the move is not allowed.
func (i *SyncItem) Advance(next SyncStatus) error {
	if !i.Status.CanAdvance(next) {
		return fmt.Errorf("%w: %s -> %s (item %s)", ErrIllegalTransition, i.Status, next, i.ID)
	}
	i.Status = next
	i.UpdatedAt = time.Now().UTC()
	return nil
}
