// Package worker provides a small fixed-size job pool and a Job
// interface background services enqueue work onto, grounded on the
// teacher's internal/worker package. The concrete Discord-bot workers
// (daily/weekly reset, gamble, expedition, subscription) had no
// game-domain analogue and were dropped; the generic Pool/Job primitives
// were kept and now back the stamina regeneration job.
package worker

import (
	"context"
	"sync"

	"github.com/daicaxom/tactics-server/internal/logger"
)

// Job represents a task to be executed by a worker.
type Job interface {
	Process(ctx context.Context) error
}

// Pool is a fixed-size pool of goroutines draining a shared job queue.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a new worker pool with the given worker count and
// queue capacity.
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the pool's worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking if the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// EnqueueContext adds a job to the queue, returning ctx.Err() instead of
// blocking forever if ctx is cancelled before the queue has room.
func (p *Pool) EnqueueContext(ctx context.Context, job Job) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop stops the pool's workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
