// Package scheduler drives worker.Job values on a fixed interval,
// grounded on the teacher's internal/scheduler package.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/daicaxom/tactics-server/internal/worker"
)

// Scheduler manages scheduled jobs.
type Scheduler struct {
	workerPool *worker.Pool
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a new scheduler backed by pool.
func New(pool *worker.Pool) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		workerPool: pool,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Schedule registers a job to run at a fixed interval.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// If the pool is full and we are stopping, this returns quickly.
				_ = s.workerPool.EnqueueContext(s.ctx, job)
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// Start starts the scheduler. Schedule starts its goroutine immediately,
// so this is a no-op kept for symmetry with Stop.
func (s *Scheduler) Start() {
}

// Stop stops all scheduled jobs and waits for their goroutines to exit.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
