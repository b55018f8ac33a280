package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-study-keeper/internal/config"
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/models"
)

// newTestStorages opens a throwaway on-disk SQLite database, runs migrations,
// and returns the wired repositories.
func newTestStorages(t *testing.T) *Storages {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "keeper_test.db")
	storages, err := NewStorages(config.Storage{DB: config.DB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	return storages
}

func newTestItem(t *testing.T, ref models.EntityRef, kind models.OperationKind, priority models.Priority) models.SyncItem {
	t.Helper()

	var payload json.RawMessage
	if kind != models.OpDelete {
		payload = json.RawMessage(`{"title":"Operating Systems"}`)
	}

	op, err := models.NewSyncOperation(ref, kind, payload, priority, models.VersionVector{"device-a": 1}, "device-a")
	require.NoError(t, err)

	return models.SyncItem{
		ID:        "item-" + ref.ID + "-" + string(kind),
		Operation: op,
		Status:    models.StatusPending,
		UpdatedAt: time.Now().UTC(),
	}
}

// ── SyncItemRepository ──────────────────────────────────────────────────────

func TestSyncItemRepository_SaveAndGet(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	item := newTestItem(t, models.EntityRef{Type: models.EntityCourse, ID: "course-1"}, models.OpUpdate, models.PriorityHigh)
	require.NoError(t, s.Items.SaveItem(ctx, item))

	got, err := s.Items.GetItem(ctx, item.ID)
	require.NoError(t, err)

	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Operation.Ref, got.Operation.Ref)
	assert.Equal(t, models.OpUpdate, got.Operation.Kind)
	assert.Equal(t, models.PriorityHigh, got.Operation.Priority)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.JSONEq(t, string(item.Operation.Payload), string(got.Operation.Payload))
	assert.EqualValues(t, 1, got.Operation.Vector.Counter("device-a"))
}

func TestSyncItemRepository_GetItem_NotFound(t *testing.T) {
	s := newTestStorages(t)

	_, err := s.Items.GetItem(context.Background(), "missing")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestSyncItemRepository_DeletePayloadIsNull(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	item := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "post-1"}, models.OpDelete, models.PriorityNormal)
	require.NoError(t, s.Items.SaveItem(ctx, item))

	got, err := s.Items.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Operation.Payload)
}

func TestSyncItemRepository_GetPendingByRef(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	ref := models.EntityRef{Type: models.EntityQuiz, ID: "quiz-1"}
	item := newTestItem(t, ref, models.OpUpdate, models.PriorityNormal)
	require.NoError(t, s.Items.SaveItem(ctx, item))

	got, err := s.Items.GetPendingByRef(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	// Non-pending items are invisible to the coalescing lookup.
	require.NoError(t, got.Advance(models.StatusInFlight))
	require.NoError(t, s.Items.UpdateItem(ctx, got, models.StatusPending))

	_, err = s.Items.GetPendingByRef(ctx, ref)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestSyncItemRepository_ListDue_OrderAndBackoff(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	now := time.Now().UTC()

	low := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "post-low"}, models.OpUpdate, models.PriorityLow)
	critical := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "post-crit"}, models.OpUpdate, models.PriorityCritical)
	backedOff := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "post-later"}, models.OpUpdate, models.PriorityCritical)
	backedOff.NextAttemptAt = now.Add(time.Hour)

	for _, item := range []models.SyncItem{low, critical, backedOff} {
		require.NoError(t, s.Items.SaveItem(ctx, item))
	}

	due, err := s.Items.ListDue(ctx, now, 0)
	require.NoError(t, err)

	require.Len(t, due, 2, "item under backoff must not be due")
	assert.Equal(t, critical.ID, due[0].ID, "higher priority dispatches first")
	assert.Equal(t, low.ID, due[1].ID)
}

func TestSyncItemRepository_UpdateItem_MissingRow(t *testing.T) {
	s := newTestStorages(t)

	item := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "ghost"}, models.OpUpdate, models.PriorityNormal)
	err := s.Items.UpdateItem(context.Background(), item, models.StatusPending)
	require.ErrorIs(t, err, ErrItemStateChanged)
}

func TestSyncItemRepository_UpdateItem_StaleStatusGuard(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	item := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "post-racy"}, models.OpUpdate, models.PriorityNormal)
	require.NoError(t, s.Items.SaveItem(ctx, item))

	// another actor advances the row first
	advanced := item
	require.NoError(t, advanced.Advance(models.StatusInFlight))
	require.NoError(t, s.Items.UpdateItem(ctx, advanced, models.StatusPending))

	// a writer still holding the pending copy must not overwrite it
	stale := item
	require.NoError(t, stale.Advance(models.StatusDismissed))
	err := s.Items.UpdateItem(ctx, stale, models.StatusPending)
	require.ErrorIs(t, err, ErrItemStateChanged)

	got, err := s.Items.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInFlight, got.Status, "the concurrent advance survives")
}

func TestSyncItemRepository_DeleteItem(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	item := newTestItem(t, models.EntityRef{Type: models.EntityTopic, ID: "topic-1"}, models.OpCreate, models.PriorityNormal)
	require.NoError(t, s.Items.SaveItem(ctx, item))
	require.NoError(t, s.Items.DeleteItem(ctx, item.ID))

	_, err := s.Items.GetItem(ctx, item.ID)
	require.ErrorIs(t, err, ErrItemNotFound)

	// deleting a missing item is not an error
	require.NoError(t, s.Items.DeleteItem(ctx, item.ID))
}

func TestSyncItemRepository_CountActive(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	pending := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "p1"}, models.OpUpdate, models.PriorityNormal)
	require.NoError(t, s.Items.SaveItem(ctx, pending))

	synced := newTestItem(t, models.EntityRef{Type: models.EntityPost, ID: "p2"}, models.OpUpdate, models.PriorityNormal)
	synced.Status = models.StatusSynced
	require.NoError(t, s.Items.SaveItem(ctx, synced))

	count, err := s.Items.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "terminal items are not active")
}

func TestSyncItemRepository_ResetInFlight(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	stuck := newTestItem(t, models.EntityRef{Type: models.EntityQuiz, ID: "quiz-9"}, models.OpUpdate, models.PriorityNormal)
	stuck.Status = models.StatusInFlight
	require.NoError(t, s.Items.SaveItem(ctx, stuck))

	affected, err := s.Items.ResetInFlight(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := s.Items.GetItem(ctx, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

// ── EntityVectorRepository ──────────────────────────────────────────────────

func TestEntityVectorRepository_SaveAndGet(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()
	ref := models.EntityRef{Type: models.EntityCourse, ID: "course-1"}

	_, err := s.Vectors.GetVector(ctx, ref)
	require.ErrorIs(t, err, ErrVectorNotFound)

	vector := models.VersionVector{"device-a": 2, "device-b": 1}
	require.NoError(t, s.Vectors.SaveVector(ctx, ref, vector))

	got, err := s.Vectors.GetVector(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, vector, got)

	// upsert replaces the stored vector
	merged := vector.Increment("device-a")
	require.NoError(t, s.Vectors.SaveVector(ctx, ref, merged))

	got, err = s.Vectors.GetVector(ctx, ref)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Counter("device-a"))
}

// ── ConflictRepository ──────────────────────────────────────────────────────

func newTestConflict(t *testing.T, itemID string) models.ConflictRecord {
	t.Helper()

	ref := models.EntityRef{Type: models.EntitySubmission, ID: "sub-1"}
	local, err := models.NewSyncOperation(ref, models.OpUpdate, json.RawMessage(`{"answer":"42"}`),
		models.PriorityNormal, models.VersionVector{"device-a": 2}, "device-a")
	require.NoError(t, err)

	return models.ConflictRecord{
		ItemID: itemID,
		Ref:    ref,
		Local:  local,
		Remote: models.RemoteSnapshot{
			Ref:       ref,
			Payload:   json.RawMessage(`{"answer":"41"}`),
			Vector:    models.VersionVector{"device-b": 1},
			UpdatedAt: time.Now().UTC(),
			Node:      "device-b",
		},
		DetectedAt: time.Now().UTC(),
		Resolution: models.Resolution{Kind: models.ResolutionManualPending},
	}
}

func TestConflictRepository_SaveGetList(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	rec := newTestConflict(t, "item-1")
	require.NoError(t, s.Conflicts.SaveConflict(ctx, rec))

	got, err := s.Conflicts.GetConflict(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Ref, got.Ref)
	assert.JSONEq(t, string(rec.Local.Payload), string(got.Local.Payload))
	assert.JSONEq(t, string(rec.Remote.Payload), string(got.Remote.Payload))
	assert.Equal(t, models.ResolutionManualPending, got.Resolution.Kind)

	open, err := s.Conflicts.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	count, err := s.Conflicts.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConflictRepository_Resolve(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	rec := newTestConflict(t, "item-2")
	require.NoError(t, s.Conflicts.SaveConflict(ctx, rec))

	resolution := models.Resolution{
		Kind:   models.ResolutionLocalWins,
		Vector: models.VersionVector{"device-a": 2, "device-b": 1},
		Reason: "manual decision: keep_local",
	}
	require.NoError(t, s.Conflicts.Resolve(ctx, "item-2", resolution))

	// resolved records disappear from the open set
	open, err := s.Conflicts.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	got, err := s.Conflicts.GetConflict(ctx, "item-2")
	require.NoError(t, err)
	assert.Equal(t, models.ResolutionLocalWins, got.Resolution.Kind)

	// double-resolve is rejected
	err = s.Conflicts.Resolve(ctx, "item-2", resolution)
	require.ErrorIs(t, err, ErrConflictNotFound)
}

func TestConflictRepository_GetConflict_NotFound(t *testing.T) {
	s := newTestStorages(t)

	_, err := s.Conflicts.GetConflict(context.Background(), "missing")
	require.ErrorIs(t, err, ErrConflictNotFound)
}
