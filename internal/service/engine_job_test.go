// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-study-keeper/models"
)

// spyEngine counts RunCycle invocations; a hand stub keeps this file free of
// the generated mocks and the import cycle they would bring.
type spyEngine struct {
	cycles atomic.Int64
	err    error
}

func (s *spyEngine) Enqueue(context.Context, models.SyncOperation) (models.SyncItem, error) {
	return models.SyncItem{}, nil
}

func (s *spyEngine) RunCycle(context.Context) error {
	s.cycles.Add(1)
	return s.err
}

func (s *spyEngine) Retry(context.Context, string) error  { return nil }
func (s *spyEngine) Cancel(context.Context, string) error { return nil }

func (s *spyEngine) ResolveManually(context.Context, string, models.ManualDecision) error {
	return nil
}

func (s *spyEngine) ListQueue(context.Context) ([]models.SyncItem, error) { return nil, nil }

func (s *spyEngine) ListConflicts(context.Context) ([]models.ConflictRecord, error) {
	return nil, nil
}

func (s *spyEngine) Status(context.Context) (models.EngineStatus, error) {
	return models.EngineStatus{}, nil
}

func (s *spyEngine) Subscribe() (<-chan StatusEvent, func()) { return nil, func() {} }
func (s *spyEngine) Recover(context.Context) error           { return nil }

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_Start_RunsCycles(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.cycles.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RunCycle should fire repeatedly, got %d", got)
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	cyclesAfterStop := spy.cycles.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, cyclesAfterStop, spy.cycles.Load(), "no cycles may run after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyEngine{})
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyEngine{})
	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Start_DefaultInterval(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 falls back to 30s, so nothing fires within 20ms
	job.Start(ctx, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.cycles.Load())
}

func TestSyncJob_Restart_StopsPrevious(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	cyclesBefore := spy.cycles.Load()
	assert.Greater(t, cyclesBefore, int64(0))

	// the second Start stops the previous goroutine internally
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.cycles.Load(), cyclesBefore, "the restarted job keeps producing cycles")
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestSyncJob_CycleError_DoesNotStopJob(t *testing.T) {
	spy := &spyEngine{err: assert.AnError}
	job := NewSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.cycles.Load()
	assert.GreaterOrEqual(t, got, int64(3), "cycles keep firing despite errors, got %d", got)
}

// ── Kick ─────────────────────────────────────────────────────────────────────

func TestSyncJob_Kick_TriggersImmediateCycle(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)

	// ticker interval far beyond the test duration: any cycle comes from Kick
	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	require.Equal(t, int64(0), spy.cycles.Load())

	job.Kick()
	require.Eventually(t, func() bool { return spy.cycles.Load() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestSyncJob_Kick_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spyEngine{})
	assert.NotPanics(t, func() { job.Kick() })
}

func TestSyncJob_Kick_BurstCollapses(t *testing.T) {
	spy := &spyEngine{}
	job := NewSyncJob(spy)

	job.Start(context.Background(), time.Hour)
	defer job.Stop()

	for i := 0; i < 10; i++ {
		job.Kick()
	}

	require.Eventually(t, func() bool { return spy.cycles.Load() >= 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	assert.LessOrEqual(t, spy.cycles.Load(), int64(2), "a burst of kicks collapses into at most one queued extra cycle")
}
