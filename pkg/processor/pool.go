package processor

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrQueueFull is returned by Submit when the job queue has no room. The
// submission handler surfaces it as 503 and removes the record it inserted
// for the job.
var ErrQueueFull = errors.New("processing queue is full")

// Pool runs record pipelines on a fixed number of background workers. The
// bounded queue is the admission limit: load beyond workers+queue is rejected
// rather than spawning unbounded goroutines against the external APIs.
type Pool struct {
	processor *Processor
	jobs      chan Job
	workers   int
	wg        sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(processor *Processor, workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		processor: processor,
		jobs:      make(chan Job, queueSize),
		workers:   workers,
	}
}

// Start launches the workers. Each worker drains the queue one job at a time;
// there is no parallelism within a single record's pipeline.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(workerID int) {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processor.Process(ctx, job)
			}
			log.Printf("Worker %d: queue drained, exiting", workerID)
		}(i)
	}
}

// Submit enqueues a job without blocking. Returns ErrQueueFull when the
// queue is at capacity.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New("pool is shut down")
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits for queued and in-flight jobs to
// finish.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
