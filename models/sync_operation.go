// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPayload is returned when an operation is constructed with an
// empty payload for a kind that requires one (create, update). Such an
// operation is rejected at enqueue time and never retried.
var ErrInvalidPayload = errors.New("invalid operation payload")

// OperationKind is the kind of change a SyncOperation carries.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// Priority orders queued operations across entities. Higher values are
// serviced first; ordering within one entity stays FIFO regardless.
type Priority int

const (
	PriorityLow      Priority = 0
	PriorityNormal   Priority = 1
	PriorityHigh     Priority = 2
	PriorityCritical Priority = 3
)

// String returns the lower-case name of the priority level.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Max returns the higher of the two priorities.
func (p Priority) Max(other Priority) Priority {
	if other > p {
		return other
	}
	return p
}

// SyncOperation is an immutable record of one user-initiated change: the
// target entity, the kind of change, an opaque serialized payload (entity
// diff or full snapshot), the priority level, the creation timestamp, and
// a snapshot of the entity's version vector at creation time.
//
// Operations are value types; the engine never mutates one after
// construction. Superseding edits to the same entity are coalesced by the
// engine into a fresh operation instead.
type SyncOperation struct {
	Ref       EntityRef       `json:"ref"`
	Kind      OperationKind   `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Priority  Priority        `json:"priority"`
	CreatedAt time.Time       `json:"created_at"`
	Vector    VersionVector   `json:"vector"`

	// Node is the identifier of the device that authored the change.
	// Used as the deterministic tie-break in last-writer-wins resolution.
	Node string `json:"node"`
}

// NewSyncOperation validates and builds a SyncOperation stamped with the
// current time. Create and update operations must carry a non-empty
// payload; delete operations are pure tombstones and may omit it.
func NewSyncOperation(ref EntityRef, kind OperationKind, payload json.RawMessage, priority Priority, vector VersionVector, node string) (SyncOperation, error) {
	if ref.IsZero() {
		return SyncOperation{}, fmt.Errorf("%w: empty entity reference", ErrInvalidPayload)
	}
	switch kind {
	case OpCreate, OpUpdate:
		if len(payload) == 0 {
			return SyncOperation{}, fmt.Errorf("%w: %s operation requires a payload", ErrInvalidPayload, kind)
		}
	case OpDelete:
		// tombstone, payload optional
	default:
		return SyncOperation{}, fmt.Errorf("%w: unknown operation kind %q", ErrInvalidPayload, kind)
	}

	return SyncOperation{
		Ref:       ref,
		Kind:      kind,
		Payload:   payload,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
		Vector:    vector.Clone(),
		Node:      node,
	}, nil
}
