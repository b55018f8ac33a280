package models

import "time"

// ResolutionKind is the outcome chosen for a detected conflict.
type ResolutionKind string

const (
	// ResolutionLocalWins keeps the local operation's payload.
	ResolutionLocalWins ResolutionKind = "local_wins"

	// ResolutionRemoteWins discards the local change in favour of the
	// remote snapshot.
	ResolutionRemoteWins ResolutionKind = "remote_wins"

	// ResolutionMerged produced a synthesized payload combining both
	// sides field-wise.
	ResolutionMerged ResolutionKind = "merged"

	// ResolutionManualPending means no automatic outcome was possible;
	// the record waits for an external decision.
	ResolutionManualPending ResolutionKind = "manual_pending"
)

// Resolution is the result of running the conflict-resolution policy
// chain over one conflict.
type Resolution struct {
	// Kind is the chosen outcome.
	Kind ResolutionKind `json:"kind"`

	// Payload is the winning or merged payload to apply remotely. Empty
	// for remote-wins (nothing to write) and manual-pending outcomes.
	Payload []byte `json:"payload,omitempty"`

	// Kind of operation to apply for the winning side. Relevant when a
	// delete tombstone beats a concurrent edit.
	OperationKind OperationKind `json:"operation_kind,omitempty"`

	// Vector is the union of both sides' vectors; every resolution merges
	// causal history even when one side's data change is discarded.
	Vector VersionVector `json:"vector"`

	// Reason is a short human-readable explanation recorded for audit.
	Reason string `json:"reason,omitempty"`
}

// ConflictRecord pairs the local operation with the remote snapshot that
// produced a Concurrent comparison. It lives in the resolver's pending set
// until resolved and is surfaced read-only to the UI so both sides can be
// rendered for review.
type ConflictRecord struct {
	// ItemID is the queue item whose apply detected the conflict.
	ItemID string `json:"item_id"`

	// Ref is the entity both sides edited.
	Ref EntityRef `json:"ref"`

	// Local is the queued local operation, payload and creation-time
	// vector included.
	Local SyncOperation `json:"local"`

	// Remote is the snapshot fetched from the remote service.
	Remote RemoteSnapshot `json:"remote"`

	// DetectedAt is when the concurrent relationship was established.
	DetectedAt time.Time `json:"detected_at"`

	// Resolution is the chosen outcome, or ResolutionManualPending while
	// the record awaits an external decision.
	Resolution Resolution `json:"resolution"`
}

// ManualDecision is the external answer supplied for a manual-pending
// conflict via the resolve endpoint.
type ManualDecision string

const (
	// DecisionKeepLocal re-applies the local payload remotely.
	DecisionKeepLocal ManualDecision = "keep_local"

	// DecisionKeepRemote accepts the remote snapshot and discards the
	// local change.
	DecisionKeepRemote ManualDecision = "keep_remote"

	// DecisionDismiss discards the local change without touching the
	// remote; the queue item ends Dismissed.
	DecisionDismiss ManualDecision = "dismiss"
)
