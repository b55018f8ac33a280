// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-study-keeper/models"
)

//go:generate mockgen -source=sync_interfaces.go -destination=../mock/service_mock.go -package=mock

// StatusEvent notifies subscribers that one queue item changed status.
type StatusEvent struct {
	// ItemID is the queue item that moved.
	ItemID string `json:"item_id"`

	// Ref is the entity the item targets.
	Ref models.EntityRef `json:"ref"`

	// Status is the state the item moved into.
	Status models.SyncStatus `json:"status"`
}

// SyncEngine is the client-side contract for the offline sync queue: it
// accepts local operations, pushes them to the remote service in priority
// order, and coordinates conflict resolution.
type SyncEngine interface {
	// Enqueue adds op to the durable queue, coalescing it with any pending
	// operation already targeting the same entity. Returns the resulting
	// queue item. When a delete cancels out a pending create, both vanish
	// and the returned item is the zero value.
	Enqueue(ctx context.Context, op models.SyncOperation) (models.SyncItem, error)

	// RunCycle executes one sync cycle: it dispatches every due pending
	// item to the remote service, honouring per-entity mutual exclusion,
	// and routes outcomes through the status machine. Only one cycle runs
	// at a time; a concurrent call returns ErrCycleInProgress.
	RunCycle(ctx context.Context) error

	// Retry moves a failed item back to pending for the next cycle.
	// Returns ErrRetryExhausted once the item's retry budget is spent.
	Retry(ctx context.Context, itemID string) error

	// Cancel dismisses a pending or failed item without touching the
	// remote. Returns ErrNotCancellable for items in any other state.
	Cancel(ctx context.Context, itemID string) error

	// ResolveManually applies an external decision to a manual-pending
	// conflict: keep_local re-applies the local payload remotely,
	// keep_remote accepts the remote state, dismiss discards the local
	// change without remote interaction.
	ResolveManually(ctx context.Context, itemID string, decision models.ManualDecision) error

	// ListQueue returns all non-terminal queue items in dispatch order.
	ListQueue(ctx context.Context) ([]models.SyncItem, error)

	// ListConflicts returns all conflict records awaiting a decision.
	ListConflicts(ctx context.Context) ([]models.ConflictRecord, error)

	// Status returns a point-in-time snapshot of engine counters.
	Status(ctx context.Context) (models.EngineStatus, error)

	// Subscribe registers a status listener. Events are delivered
	// best-effort: a slow subscriber misses events rather than blocking
	// the engine. The returned func unregisters the listener and closes
	// the channel.
	Subscribe() (<-chan StatusEvent, func())

	// Recover moves items orphaned in the in-flight state by a previous
	// crash back to pending. Called once at startup before the first
	// cycle.
	Recover(ctx context.Context) error
}

// ConflictResolver runs the policy chain over one detected conflict and
// produces the outcome to apply.
type ConflictResolver interface {
	// Resolve inspects the local operation and remote snapshot and returns
	// the chosen resolution. It never performs I/O; deciding and applying
	// are separate so the engine controls all remote interaction.
	Resolve(ctx context.Context, conflict models.ConflictRecord) (models.Resolution, error)
}

// SyncJob is the contract for the background worker that periodically runs
// sync cycles.
type SyncJob interface {
	// Start launches the background goroutine. It runs a cycle every
	// interval, defaulting to 30 seconds if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Kick requests an immediate cycle outside the regular cadence.
	// No-op when the job is not running or a kick is already queued.
	Kick()

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
