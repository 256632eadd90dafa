package worker

import (
	"context"
	"sync"
	"time"
)

// Job is one unit of outbound work, typically a single provider search.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job hands back to the collector.
type Result interface {
	GetError() error
}

// Pool runs jobs on a bounded set of workers and streams results as
// they arrive. The collector reads Results() under its own deadline and
// may walk away early; results produced after that are silently dropped.
type Pool struct {
	workers    int
	jobTimeout time.Duration // 0 means no per-job deadline
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given worker count and per-job timeout.
func NewPool(workers int, jobTimeout time.Duration) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobTimeout: jobTimeout,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the worker goroutines.
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
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}

			jobCtx := p.ctx
			var cancel context.CancelFunc
			if p.jobTimeout > 0 {
				jobCtx, cancel = context.WithTimeout(p.ctx, p.jobTimeout)
			}

			result := job.Execute(jobCtx)
			if cancel != nil {
				cancel()
			}

			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit enqueues a job. Submitting after Shutdown is a no-op.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Close signals that no more jobs will be submitted. The results
// channel is closed once every queued job has finished.
func (p *Pool) Close() {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()
}

// Results returns the stream of completed job results. It is closed
// after Close once all workers drain, or after Shutdown.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Wait closes the queue and collects every remaining result.
func (p *Pool) Wait() []Result {
	p.Close()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels in-flight jobs and closes the results channel.
// Results not yet collected are discarded.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
