// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-study-keeper/internal/adapter"
	"github.com/MKhiriev/go-study-keeper/internal/config"
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/internal/store"
	"github.com/MKhiriev/go-study-keeper/internal/utils"
	"github.com/MKhiriev/go-study-keeper/models"
)

// syncEngine owns the durable queue and drives the sync lifecycle. All queue
// items are mutated exclusively here; the store, adapter, and resolver are
// passive collaborators.
type syncEngine struct {
	items     store.SyncItemRepository
	vectors   store.EntityVectorRepository
	conflicts store.ConflictRepository
	remote    adapter.RemoteAdapter
	resolver  ConflictResolver

	cfg  config.Engine
	node string
	ids  *utils.UUIDGenerator

	logger *logger.Logger

	// enqueueMu serializes the read-coalesce-write sequence so two
	// concurrent enqueues for one entity cannot both pass the pending
	// lookup.
	enqueueMu sync.Mutex

	cycleRunning atomic.Bool

	subMu       sync.Mutex
	subscribers map[int]chan StatusEvent
	nextSubID   int

	cyclesRun     atomic.Int64
	itemsSynced   atomic.Int64
	itemsFailed   atomic.Int64
	lastStarted   atomic.Pointer[time.Time]
	lastCompleted atomic.Pointer[time.Time]
}

// NewSyncEngine wires the engine to its storage, transport, and resolver
// collaborators. node is the stable identifier of this device, used to stamp
// version-vector increments on every enqueued change.
func NewSyncEngine(storages *store.Storages, remote adapter.RemoteAdapter, resolver ConflictResolver, cfg config.Engine, node string, log *logger.Logger) SyncEngine {
	return &syncEngine{
		items:       storages.Items,
		vectors:     storages.Vectors,
		conflicts:   storages.Conflicts,
		remote:      remote,
		resolver:    resolver,
		cfg:         cfg,
		node:        node,
		ids:         utils.NewUUIDGenerator(),
		logger:      log,
		subscribers: make(map[int]chan StatusEvent),
	}
}

func (e *syncEngine) Enqueue(ctx context.Context, op models.SyncOperation) (models.SyncItem, error) {
	if op.Ref.IsZero() {
		return models.SyncItem{}, fmt.Errorf("%w: empty entity reference", models.ErrInvalidPayload)
	}
	if op.Node == "" {
		op.Node = e.node
	}

	e.enqueueMu.Lock()
	defer e.enqueueMu.Unlock()

	stored, err := e.vectors.GetVector(ctx, op.Ref)
	if err != nil && !errors.Is(err, store.ErrVectorNotFound) {
		return models.SyncItem{}, fmt.Errorf("load entity vector: %w", err)
	}

	// every local edit advances this device's counter on top of all
	// history observed so far
	stamped := stored.Merge(op.Vector).Increment(op.Node)
	op.Vector = stamped
	if err = e.vectors.SaveVector(ctx, op.Ref, stamped); err != nil {
		return models.SyncItem{}, fmt.Errorf("save entity vector: %w", err)
	}

	existing, err := e.items.GetPendingByRef(ctx, op.Ref)
	if errors.Is(err, store.ErrItemNotFound) {
		return e.saveNewItem(ctx, op)
	}
	if err != nil {
		return models.SyncItem{}, fmt.Errorf("lookup pending item: %w", err)
	}

	// deleting an entity that was never created remotely cancels the
	// pending create outright: neither operation needs to reach the remote
	if existing.Operation.Kind == models.OpCreate && op.Kind == models.OpDelete {
		if err = e.items.DeleteItem(ctx, existing.ID); err != nil {
			return models.SyncItem{}, fmt.Errorf("cancel pending create: %w", err)
		}
		e.publish(StatusEvent{ItemID: existing.ID, Ref: op.Ref, Status: models.StatusDismissed})
		return models.SyncItem{}, nil
	}

	coalesced := coalesce(existing, op)
	if err = e.items.UpdateItem(ctx, coalesced, models.StatusPending); err != nil {
		if errors.Is(err, store.ErrItemStateChanged) {
			// the pending item entered a cycle between the lookup and the
			// write; the edit becomes a fresh queue item behind it
			return e.saveNewItem(ctx, op)
		}
		return models.SyncItem{}, fmt.Errorf("update coalesced item: %w", err)
	}
	e.publish(StatusEvent{ItemID: coalesced.ID, Ref: op.Ref, Status: coalesced.Status})
	return coalesced, nil
}

func (e *syncEngine) saveNewItem(ctx context.Context, op models.SyncOperation) (models.SyncItem, error) {
	item := models.SyncItem{
		ID:        e.ids.Generate(),
		Operation: op,
		Status:    models.StatusPending,
		UpdatedAt: time.Now().UTC(),
	}
	if err := e.items.SaveItem(ctx, item); err != nil {
		return models.SyncItem{}, fmt.Errorf("save queue item: %w", err)
	}
	e.publish(StatusEvent{ItemID: item.ID, Ref: op.Ref, Status: item.Status})
	return item, nil
}

// coalesce folds a new operation into the pending item already targeting the
// same entity: the newer payload replaces the older one, the earliest
// creation timestamp and the higher priority survive, and the vectors merge.
// A pending delete absorbs any later edit unchanged.
func coalesce(existing models.SyncItem, op models.SyncOperation) models.SyncItem {
	merged := existing.Operation
	merged.Priority = merged.Priority.Max(op.Priority)
	merged.Vector = merged.Vector.Merge(op.Vector)
	merged.Node = op.Node

	if merged.Kind != models.OpDelete {
		merged.Payload = op.Payload
		switch {
		case op.Kind == models.OpDelete:
			merged.Kind = models.OpDelete
			merged.Payload = nil
		case merged.Kind == models.OpCreate:
			// refining an unsent create keeps it a create
		default:
			merged.Kind = op.Kind
		}
	}

	existing.Operation = merged
	existing.UpdatedAt = time.Now().UTC()
	return existing
}

func (e *syncEngine) RunCycle(ctx context.Context) error {
	if !e.cycleRunning.CompareAndSwap(false, true) {
		return ErrCycleInProgress
	}
	defer e.cycleRunning.Store(false)

	started := time.Now().UTC()
	e.lastStarted.Store(&started)

	if err := e.promoteRetries(ctx, started); err != nil {
		return err
	}

	due, err := e.items.ListDue(ctx, started, 0)
	if err != nil {
		return fmt.Errorf("list due items: %w", err)
	}

	// at most one item per entity enters in_flight during a cycle
	busy := make(map[models.EntityRef]struct{}, len(due))
	for _, item := range due {
		if _, taken := busy[item.Operation.Ref]; taken {
			continue
		}
		busy[item.Operation.Ref] = struct{}{}

		if err = e.processItem(ctx, item); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			e.logger.Error().Err(err).
				Str("item_id", item.ID).
				Str("entity", item.Operation.Ref.String()).
				Msg("failed to process queue item")
		}
	}

	completed := time.Now().UTC()
	e.lastCompleted.Store(&completed)
	e.cyclesRun.Add(1)

	e.logger.Debug().
		Int("due", len(due)).
		Dur("took", completed.Sub(started)).
		Msg("sync cycle completed")
	return nil
}

// promoteRetries moves failed items whose backoff window has elapsed back to
// pending, provided they still have retry budget left.
func (e *syncEngine) promoteRetries(ctx context.Context, now time.Time) error {
	failed, err := e.items.ListByStatus(ctx, models.StatusFailed)
	if err != nil {
		return fmt.Errorf("list failed items: %w", err)
	}

	for i := range failed {
		item := failed[i]
		if item.RetryCount >= e.cfg.MaxRetries || item.NextAttemptAt.After(now) {
			continue
		}
		if err = e.advance(ctx, &item, models.StatusPending); err != nil {
			return err
		}
	}
	return nil
}

// processItem pushes one pending item through a full attempt: mark in_flight,
// fetch the remote state, classify the vectors, and route to the matching
// outcome handler.
func (e *syncEngine) processItem(ctx context.Context, item models.SyncItem) error {
	if err := e.advance(ctx, &item, models.StatusInFlight); err != nil {
		return err
	}

	snapshot, err := e.remote.Fetch(ctx, item.Operation.Ref)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			// entity unknown remotely, the local operation applies as-is
			return e.apply(ctx, &item, item.Operation)
		}
		return e.fail(ctx, &item, fmt.Errorf("fetch remote state: %w", err))
	}

	switch item.Operation.Vector.Compare(snapshot.Vector) {
	case models.Dominates, models.Equal:
		return e.apply(ctx, &item, item.Operation)
	case models.Dominated:
		return e.supersede(ctx, &item, snapshot)
	default:
		return e.resolveConflict(ctx, &item, snapshot)
	}
}

func (e *syncEngine) apply(ctx context.Context, item *models.SyncItem, op models.SyncOperation) error {
	ack, err := e.remote.Apply(ctx, op)
	if err != nil {
		if op.Kind == models.OpDelete && errors.Is(err, adapter.ErrNotFound) {
			// entity already gone remotely, the tombstone is a no-op
			return e.succeed(ctx, item, op.Vector)
		}
		return e.fail(ctx, item, fmt.Errorf("apply operation remotely: %w", err))
	}
	return e.succeed(ctx, item, ack)
}

func (e *syncEngine) succeed(ctx context.Context, item *models.SyncItem, ack models.VersionVector) error {
	if err := e.mergeVector(ctx, item.Operation.Ref, ack); err != nil {
		return err
	}
	if err := e.advance(ctx, item, models.StatusSynced); err != nil {
		return err
	}
	e.itemsSynced.Add(1)
	return nil
}

// fail records a failed attempt. Transient faults schedule the next attempt
// with exponential backoff; permanent rejections and exhausted budgets leave
// the item failed until a manual retry or dismissal.
func (e *syncEngine) fail(ctx context.Context, item *models.SyncItem, cause error) error {
	log := logger.FromContext(ctx)

	item.RetryCount++
	e.itemsFailed.Add(1)

	permanent := errors.Is(cause, adapter.ErrRejected) || errors.Is(cause, adapter.ErrBadRequest)
	if permanent {
		item.RetryCount = e.cfg.MaxRetries
	}

	if item.RetryCount >= e.cfg.MaxRetries {
		item.NextAttemptAt = time.Time{}
		if err := e.advance(ctx, item, models.StatusFailed); err != nil {
			return err
		}
		log.Error().Err(cause).
			Str("item_id", item.ID).
			Str("entity", item.Operation.Ref.String()).
			Bool("permanent", permanent).
			Msg("item failed terminally, awaiting manual retry or dismissal")
		return nil
	}

	delay := e.backoff(item.RetryCount)
	item.NextAttemptAt = time.Now().UTC().Add(delay)
	if err := e.advance(ctx, item, models.StatusFailed); err != nil {
		return err
	}

	log.Warn().Err(cause).
		Str("item_id", item.ID).
		Str("entity", item.Operation.Ref.String()).
		Int("retry_count", item.RetryCount).
		Dur("backoff", delay).
		Msg("transient apply failure, retry scheduled")
	return nil
}

// backoff returns the delay before attempt number retry: the base doubled
// per prior attempt, capped.
func (e *syncEngine) backoff(retry int) time.Duration {
	delay := e.cfg.BackoffBase
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= e.cfg.BackoffCap {
			return e.cfg.BackoffCap
		}
	}
	if delay > e.cfg.BackoffCap {
		return e.cfg.BackoffCap
	}
	return delay
}

// supersede discards a stale local operation the remote has already moved
// past. When rederivation is enabled, the discarded payload is re-enqueued on
// top of the freshly merged history instead of being lost.
func (e *syncEngine) supersede(ctx context.Context, item *models.SyncItem, snapshot models.RemoteSnapshot) error {
	log := logger.FromContext(ctx)

	if err := e.mergeVector(ctx, item.Operation.Ref, snapshot.Vector); err != nil {
		return err
	}
	if err := e.advance(ctx, item, models.StatusSuperseded); err != nil {
		return err
	}
	log.Info().
		Str("item_id", item.ID).
		Str("entity", item.Operation.Ref.String()).
		Msg("local operation superseded by remote history")

	if !e.cfg.RederiveSuperseded || item.Operation.Kind == models.OpDelete || snapshot.Deleted {
		return nil
	}

	op, err := models.NewSyncOperation(
		item.Operation.Ref,
		models.OpUpdate,
		item.Operation.Payload,
		item.Operation.Priority,
		item.Operation.Vector.Merge(snapshot.Vector),
		item.Operation.Node,
	)
	if err != nil {
		return fmt.Errorf("rederive superseded operation: %w", err)
	}
	if _, err = e.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("enqueue rederived operation: %w", err)
	}
	return nil
}

// resolveConflict routes a concurrent-edit conflict through the resolver and
// applies its outcome to the item, the conflict ledger, and the remote.
func (e *syncEngine) resolveConflict(ctx context.Context, item *models.SyncItem, snapshot models.RemoteSnapshot) error {
	record := models.ConflictRecord{
		ItemID:     item.ID,
		Ref:        item.Operation.Ref,
		Local:      item.Operation,
		Remote:     snapshot,
		DetectedAt: time.Now().UTC(),
		Resolution: models.Resolution{Kind: models.ResolutionManualPending},
	}

	resolution, err := e.resolver.Resolve(ctx, record)
	if err != nil {
		return e.fail(ctx, item, fmt.Errorf("resolve conflict: %w", err))
	}

	if err = e.conflicts.SaveConflict(ctx, record); err != nil {
		return fmt.Errorf("save conflict record: %w", err)
	}

	switch resolution.Kind {
	case models.ResolutionManualPending:
		if err = e.advance(ctx, item, models.StatusConflicted); err != nil {
			return err
		}
		return e.advance(ctx, item, models.StatusManualPending)

	case models.ResolutionRemoteWins:
		// the local change is discarded without a remote write
		if err = e.conflicts.Resolve(ctx, item.ID, resolution); err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
		if err = e.mergeVector(ctx, record.Ref, resolution.Vector); err != nil {
			return err
		}
		return e.advance(ctx, item, models.StatusSuperseded)

	case models.ResolutionMerged:
		// a synthesized operation carries both sides forward at top
		// priority; this item's change is subsumed by it
		if err = e.conflicts.Resolve(ctx, item.ID, resolution); err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
		op, opErr := models.NewSyncOperation(record.Ref, resolution.OperationKind,
			resolution.Payload, models.PriorityCritical, resolution.Vector, e.node)
		if opErr != nil {
			return fmt.Errorf("build merged operation: %w", opErr)
		}
		if err = e.advance(ctx, item, models.StatusConflicted); err != nil {
			return err
		}
		if err = e.advance(ctx, item, models.StatusSynced); err != nil {
			return err
		}
		e.itemsSynced.Add(1)
		if _, err = e.Enqueue(ctx, op); err != nil {
			return fmt.Errorf("enqueue merged operation: %w", err)
		}
		return nil

	case models.ResolutionLocalWins:
		winning := item.Operation
		winning.Kind = resolution.OperationKind
		winning.Payload = resolution.Payload
		winning.Vector = resolution.Vector

		ack, applyErr := e.remote.Apply(ctx, winning)
		if applyErr != nil {
			return e.fail(ctx, item, fmt.Errorf("apply winning local operation: %w", applyErr))
		}
		if err = e.conflicts.Resolve(ctx, item.ID, resolution); err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
		if err = e.mergeVector(ctx, record.Ref, ack); err != nil {
			return err
		}
		if err = e.advance(ctx, item, models.StatusConflicted); err != nil {
			return err
		}
		if err = e.advance(ctx, item, models.StatusSynced); err != nil {
			return err
		}
		e.itemsSynced.Add(1)
		return nil
	}

	return fmt.Errorf("unexpected resolution kind %q", resolution.Kind)
}

func (e *syncEngine) Retry(ctx context.Context, itemID string) error {
	item, err := e.items.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	if item.Status != models.StatusFailed {
		return fmt.Errorf("%w: %s -> %s (item %s)",
			models.ErrIllegalTransition, item.Status, models.StatusPending, item.ID)
	}
	if item.RetryCount >= e.cfg.MaxRetries {
		return fmt.Errorf("%w: item %s used %d of %d attempts",
			ErrRetryExhausted, itemID, item.RetryCount, e.cfg.MaxRetries)
	}

	// a manual retry skips whatever backoff window remains
	item.NextAttemptAt = time.Time{}
	return e.advance(ctx, &item, models.StatusPending)
}

func (e *syncEngine) Cancel(ctx context.Context, itemID string) error {
	item, err := e.items.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	if item.Status != models.StatusPending && item.Status != models.StatusFailed {
		return fmt.Errorf("%w: item %s is %s", ErrNotCancellable, itemID, item.Status)
	}
	return e.advance(ctx, &item, models.StatusDismissed)
}

func (e *syncEngine) ResolveManually(ctx context.Context, itemID string, decision models.ManualDecision) error {
	item, err := e.items.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	if item.Status != models.StatusManualPending {
		return fmt.Errorf("%w: item %s is %s", ErrNotManualPending, itemID, item.Status)
	}

	record, err := e.conflicts.GetConflict(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load conflict record: %w", err)
	}
	merged := record.Local.Vector.Merge(record.Remote.Vector)

	switch decision {
	case models.DecisionKeepLocal:
		winning := record.Local
		winning.Vector = merged

		ack, applyErr := e.remote.Apply(ctx, winning)
		if applyErr != nil {
			return fmt.Errorf("apply kept local operation: %w", applyErr)
		}
		resolution := models.Resolution{
			Kind:          models.ResolutionLocalWins,
			Payload:       record.Local.Payload,
			OperationKind: record.Local.Kind,
			Vector:        merged,
			Reason:        "manual decision: keep_local",
		}
		if err = e.conflicts.Resolve(ctx, itemID, resolution); err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
		if err = e.mergeVector(ctx, record.Ref, ack); err != nil {
			return err
		}
		e.itemsSynced.Add(1)
		return e.advance(ctx, &item, models.StatusSynced)

	case models.DecisionKeepRemote:
		resolution := models.Resolution{
			Kind:   models.ResolutionRemoteWins,
			Vector: merged,
			Reason: "manual decision: keep_remote",
		}
		if err = e.conflicts.Resolve(ctx, itemID, resolution); err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
		if err = e.mergeVector(ctx, record.Ref, merged); err != nil {
			return err
		}
		return e.advance(ctx, &item, models.StatusSynced)

	case models.DecisionDismiss:
		resolution := models.Resolution{
			Kind:   models.ResolutionRemoteWins,
			Vector: merged,
			Reason: "manual decision: dismiss",
		}
		if err = e.conflicts.Resolve(ctx, itemID, resolution); err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
		if err = e.mergeVector(ctx, record.Ref, merged); err != nil {
			return err
		}
		return e.advance(ctx, &item, models.StatusDismissed)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownDecision, decision)
	}
}

func (e *syncEngine) ListQueue(ctx context.Context) ([]models.SyncItem, error) {
	return e.items.ListByStatus(ctx,
		models.StatusPending,
		models.StatusInFlight,
		models.StatusFailed,
		models.StatusConflicted,
		models.StatusManualPending,
	)
}

func (e *syncEngine) ListConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	return e.conflicts.ListOpen(ctx)
}

func (e *syncEngine) Status(ctx context.Context) (models.EngineStatus, error) {
	depth, err := e.items.CountActive(ctx)
	if err != nil {
		return models.EngineStatus{}, fmt.Errorf("count active items: %w", err)
	}
	open, err := e.conflicts.CountOpen(ctx)
	if err != nil {
		return models.EngineStatus{}, fmt.Errorf("count open conflicts: %w", err)
	}

	return models.EngineStatus{
		Running:            e.cycleRunning.Load(),
		QueueDepth:         depth,
		OpenConflicts:      open,
		CyclesRun:          e.cyclesRun.Load(),
		ItemsSynced:        e.itemsSynced.Load(),
		ItemsFailed:        e.itemsFailed.Load(),
		LastCycleStarted:   e.lastStarted.Load(),
		LastCycleCompleted: e.lastCompleted.Load(),
	}, nil
}

func (e *syncEngine) Subscribe() (<-chan StatusEvent, func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	id := e.nextSubID
	e.nextSubID++

	ch := make(chan StatusEvent, 16)
	e.subscribers[id] = ch

	unsubscribe := func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		if sub, ok := e.subscribers[id]; ok {
			delete(e.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (e *syncEngine) Recover(ctx context.Context) error {
	affected, err := e.items.ResetInFlight(ctx)
	if err != nil {
		return fmt.Errorf("reset in-flight items: %w", err)
	}
	if affected > 0 {
		e.logger.Warn().Int64("items", affected).Msg("recovered items orphaned in flight by previous run")
	}
	return nil
}

// mergeVector folds freshly observed remote history into the vector stored
// for ref, the counterpart of the stamp sequence Enqueue runs on local edits.
func (e *syncEngine) mergeVector(ctx context.Context, ref models.EntityRef, incoming models.VersionVector) error {
	stored, err := e.vectors.GetVector(ctx, ref)
	if err != nil && !errors.Is(err, store.ErrVectorNotFound) {
		return fmt.Errorf("load entity vector: %w", err)
	}
	if err = e.vectors.SaveVector(ctx, ref, stored.Merge(incoming)); err != nil {
		return fmt.Errorf("save entity vector: %w", err)
	}
	return nil
}

// advance moves the item through the lifecycle machine, persists the new
// state, and notifies subscribers. The write is guarded on the status the
// item held going in, so a concurrent mutation surfaces as
// store.ErrItemStateChanged instead of being overwritten.
func (e *syncEngine) advance(ctx context.Context, item *models.SyncItem, next models.SyncStatus) error {
	prev := item.Status
	if err := item.Advance(next); err != nil {
		return err
	}
	if err := e.items.UpdateItem(ctx, *item, prev); err != nil {
		return fmt.Errorf("persist status %s: %w", next, err)
	}
	e.publish(StatusEvent{ItemID: item.ID, Ref: item.Operation.Ref, Status: next})
	return nil
}

// publish delivers the event to every subscriber without blocking: a
// subscriber with a full buffer misses the event.
func (e *syncEngine) publish(event StatusEvent) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
