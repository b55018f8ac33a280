// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the SQLite-backed persistence layer for the sync
// engine: the durable operation queue, per-entity version vectors, and
// conflict records awaiting review.
//
// All repositories share a single [*DB] connection. Queries are built with
// Masterminds/squirrel and executed through database/sql; sentinel errors
// from errors.go let callers match failure conditions with [errors.Is].
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-study-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SyncItemRepository persists queued sync operations together with their
// lifecycle state. The queue survives restarts; ordering is reconstructed
// from (priority, created_at) at read time.
type SyncItemRepository interface {
	// SaveItem inserts a new queue item. Returns ErrItemNotSaved if the
	// insert affects no rows.
	SaveItem(ctx context.Context, item models.SyncItem) error

	// GetItem returns the item with the given id, or ErrItemNotFound.
	GetItem(ctx context.Context, id string) (models.SyncItem, error)

	// GetPendingByRef returns the single pending item targeting ref, or
	// ErrItemNotFound. Coalescing keeps at most one pending item per entity.
	GetPendingByRef(ctx context.Context, ref models.EntityRef) (models.SyncItem, error)

	// ListByStatus returns all items in any of the given statuses, ordered
	// by priority (highest first) and then created_at (oldest first).
	ListByStatus(ctx context.Context, statuses ...models.SyncStatus) ([]models.SyncItem, error)

	// ListDue returns pending items whose next_attempt_at is unset or not
	// after now, in dispatch order, capped at limit when limit > 0.
	ListDue(ctx context.Context, now time.Time, limit int) ([]models.SyncItem, error)

	// UpdateItem persists the full current state of item, guarded on the
	// status the caller read it in. Returns ErrItemStateChanged if no row
	// still matches item.ID with status from, meaning a concurrent actor
	// advanced or removed the item since it was loaded.
	UpdateItem(ctx context.Context, item models.SyncItem, from models.SyncStatus) error

	// DeleteItem removes the item with the given id. Deleting a missing
	// item is not an error.
	DeleteItem(ctx context.Context, id string) error

	// CountActive returns the number of items in a non-terminal status.
	CountActive(ctx context.Context) (int, error)

	// ResetInFlight moves every in_flight item back to pending and returns
	// the number of rows touched. Called once at startup to recover items
	// orphaned by a crash mid-cycle.
	ResetInFlight(ctx context.Context) (int64, error)
}

// EntityVectorRepository persists the locally known version vector for each
// entity that has ever been enqueued or fetched.
type EntityVectorRepository interface {
	// GetVector returns the stored vector for ref, or ErrVectorNotFound if
	// the entity has no recorded history yet.
	GetVector(ctx context.Context, ref models.EntityRef) (models.VersionVector, error)

	// SaveVector upserts the vector for ref.
	SaveVector(ctx context.Context, ref models.EntityRef, vector models.VersionVector) error
}

// ConflictRepository persists conflict records from detection until a
// resolution is recorded.
type ConflictRepository interface {
	// SaveConflict inserts or replaces the conflict record keyed by
	// rec.ItemID.
	SaveConflict(ctx context.Context, rec models.ConflictRecord) error

	// GetConflict returns the record for itemID, or ErrConflictNotFound.
	GetConflict(ctx context.Context, itemID string) (models.ConflictRecord, error)

	// ListOpen returns all records without a recorded resolution, oldest
	// first.
	ListOpen(ctx context.Context) ([]models.ConflictRecord, error)

	// Resolve stores the resolution for itemID and stamps resolved_at.
	// Returns ErrConflictNotFound if no open record matches.
	Resolve(ctx context.Context, itemID string, resolution models.Resolution) error

	// CountOpen returns the number of unresolved records.
	CountOpen(ctx context.Context) (int, error)
}
