package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a pool of workers that execute jobs concurrently
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool bound to ctx with the specified number of workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
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
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Run starts the pool, feeds jobs from a separate goroutine and collects
// every result. Results arrive in completion order.
func (p *Pool) Run(jobs []Job) []Result {
	p.Start()

	go func() {
		defer close(p.jobQueue)
		for _, job := range jobs {
			select {
			case <-p.ctx.Done():
				return
			case p.jobQueue <- job:
			}
		}
	}()

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	results := make([]Result, 0, len(jobs))
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels the pool's context and waits for its workers. Jobs not yet
// started are dropped. It is safe to call after Run has returned.
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
