package service

import (
	"context"
	"sync"
	"time"
)

type syncJob struct {
	engine SyncEngine

	mu     sync.Mutex
	cancel context.CancelFunc
	kick   chan struct{}
	wg     sync.WaitGroup
}

// NewSyncJob creates a syncJob that calls engine.RunCycle on a ticker. The
// job is idle until Start is called.
func NewSyncJob(engine SyncEngine) SyncJob {
	return &syncJob{engine: engine}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that runs a cycle every interval. If
// interval is zero or negative it defaults to 30 seconds. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.kick = make(chan struct{}, 1)
	kick := j.kick
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_ = j.engine.RunCycle(jobCtx)
			case <-kick:
				_ = j.engine.RunCycle(jobCtx)
			}
		}
	}()
}

// Kick implements SyncJob. The buffered channel collapses bursts of kicks
// into a single extra cycle.
func (j *syncJob) Kick() {
	j.mu.Lock()
	kick := j.kick
	j.mu.Unlock()

	if kick == nil {
		return
	}
	select {
	case kick <- struct{}{}:
	default:
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.kick = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
