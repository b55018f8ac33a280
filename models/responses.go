package models

import "time"

// EngineStatus is a point-in-time snapshot of the sync engine's counters,
// exposed through the monitor API so the UI can render sync health without
// touching engine internals.
type EngineStatus struct {
	// Running reports whether a cycle is executing right now.
	Running bool `json:"running"`

	// QueueDepth is the number of non-terminal items in the queue.
	QueueDepth int `json:"queue_depth"`

	// OpenConflicts is the number of unresolved conflict records.
	OpenConflicts int `json:"open_conflicts"`

	// CyclesRun counts completed RunCycle invocations since start.
	CyclesRun int64 `json:"cycles_run"`

	// ItemsSynced counts items that reached the Synced status.
	ItemsSynced int64 `json:"items_synced"`

	// ItemsFailed counts transient apply failures observed.
	ItemsFailed int64 `json:"items_failed"`

	// LastCycleStarted / LastCycleCompleted bracket the most recent cycle.
	LastCycleStarted   *time.Time `json:"last_cycle_started,omitempty"`
	LastCycleCompleted *time.Time `json:"last_cycle_completed,omitempty"`
}

// QueueListResponse is the monitor API body listing queued items.
type QueueListResponse struct {
	Items  []SyncItem `json:"items"`
	Length int        `json:"length"`
}

// ConflictListResponse is the monitor API body listing open conflicts.
type ConflictListResponse struct {
	Conflicts []ConflictRecord `json:"conflicts"`
	Length    int              `json:"length"`
}

// ResolveRequest is the monitor API body supplying a manual decision for
// a conflicted item.
type ResolveRequest struct {
	Decision ManualDecision `json:"decision"`
}
