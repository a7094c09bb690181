package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockResult implements Result
type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

// mockJob implements Job
type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32 // atomic counter
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool(t *testing.T) {
	ctx := context.Background()

	p1 := NewPool(ctx, 5)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(ctx, 0)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool(ctx, -1)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}
}

func TestPool_RunManyJobs(t *testing.T) {
	// Far more jobs than queue capacity must not deadlock
	pool := NewPool(context.Background(), 2)

	var executed int32
	jobs := make([]Job, 200)
	for i := range jobs {
		jobs[i] = &mockJob{executed: &executed}
	}

	done := make(chan []Result)
	go func() { done <- pool.Run(jobs) }()

	select {
	case results := <-done:
		if len(results) != len(jobs) {
			t.Errorf("expected %d results, got %d", len(jobs), len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run deadlocked")
	}

	if atomic.LoadInt32(&executed) != int32(len(jobs)) {
		t.Errorf("expected %d executed jobs, got %d", len(jobs), executed)
	}
}

// concurrencyJob tracks max concurrent executions
type concurrencyJob struct {
	start    func()
	end      func()
	duration time.Duration
}

func (j *concurrencyJob) Execute(ctx context.Context) Result {
	if j.start != nil {
		j.start()
	}
	time.Sleep(j.duration)
	if j.end != nil {
		j.end()
	}
	return &mockResult{}
}

func TestPool_Concurrency(t *testing.T) {
	workers := 4
	pool := NewPool(context.Background(), workers)

	var current int32
	var maxConcurrent int32
	var mu sync.Mutex

	jobs := make([]Job, 40)
	for i := range jobs {
		jobs[i] = &concurrencyJob{
			start: func() {
				curr := atomic.AddInt32(&current, 1)
				mu.Lock()
				if curr > maxConcurrent {
					maxConcurrent = curr
				}
				mu.Unlock()
			},
			end: func() {
				atomic.AddInt32(&current, -1)
			},
			duration: 5 * time.Millisecond,
		}
	}

	results := pool.Run(jobs)
	if len(results) != len(jobs) {
		t.Errorf("expected %d results, got %d", len(jobs), len(results))
	}

	mu.Lock()
	max := maxConcurrent
	mu.Unlock()

	if max > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", max, workers)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	pool := NewPool(context.Background(), 2)

	results := pool.Run([]Job{&mockJob{shouldErr: true}, &mockJob{shouldErr: false}})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errs := 0
	for _, res := range results {
		if res.GetError() != nil {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("expected 1 error, got %d", errs)
	}
}

func TestPool_ShutdownAfterRun(t *testing.T) {
	pool := NewPool(context.Background(), 2)

	results := pool.Run([]Job{&mockJob{}, &mockJob{}})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown after Run blocked")
	}
	if pool.ctx.Err() == nil {
		t.Error("expected Shutdown to cancel the pool context")
	}
}

func TestPool_ShutdownStopsRun(t *testing.T) {
	pool := NewPool(context.Background(), 2)

	var executed int32
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &mockJob{duration: time.Minute, executed: &executed}
	}

	done := make(chan []Result)
	go func() { done <- pool.Run(jobs) }()

	time.Sleep(20 * time.Millisecond)
	pool.Shutdown()

	select {
	case results := <-done:
		if len(results) == len(jobs) {
			t.Errorf("expected Shutdown to drop pending jobs")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run ignored Shutdown")
	}
	if n := atomic.LoadInt32(&executed); n == int32(len(jobs)) {
		t.Errorf("expected pending jobs to be dropped, all %d started", n)
	}
}

func TestPool_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)

	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &mockJob{duration: 50 * time.Millisecond}
	}

	cancel()
	done := make(chan []Result)
	go func() { done <- pool.Run(jobs) }()

	select {
	case results := <-done:
		if len(results) == len(jobs) {
			t.Errorf("expected cancellation to cut the run short")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run ignored parent cancellation")
	}
}
