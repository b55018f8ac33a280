package models

import (
	"encoding/json"
	"time"
)

// RemoteSnapshot is the remote service's current view of one entity: the
// serialized entity body, the entity's version vector as known remotely,
// and bookkeeping fields used by last-writer-wins resolution.
type RemoteSnapshot struct {
	Ref     EntityRef       `json:"ref"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Vector  VersionVector   `json:"vector"`

	// Deleted marks a remote tombstone: the entity was deleted remotely
	// and the payload, if any, is the last state before deletion.
	Deleted bool `json:"deleted,omitempty"`

	// UpdatedAt is the remote wall-clock time of the last change.
	UpdatedAt time.Time `json:"updated_at"`

	// Node is the device that authored the last remote change.
	Node string `json:"node,omitempty"`
}

// ApplyResponse is the remote service's acknowledgement of an applied
// operation. Vector is the authoritative post-apply version vector for the
// entity and must be merged into the local entity vector.
type ApplyResponse struct {
	Ref    EntityRef     `json:"ref"`
	Vector VersionVector `json:"vector"`
}
