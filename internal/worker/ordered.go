package worker

import (
	"context"
	"errors"
	"fmt"
)

// slotJob runs fn for one index of an ordered fan-out
type slotJob struct {
	index int
	fn    func(ctx context.Context, i int) error
}

func (j *slotJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &slotResult{err: err}
	}
	return &slotResult{err: j.fn(ctx, j.index)}
}

type slotResult struct {
	err error
}

func (r *slotResult) GetError() error {
	return r.err
}

// ForEach calls fn for every index in [0, n). With workers <= 1 the calls run
// sequentially in the caller's goroutine and stop at the first error.
// Otherwise they are spread over a Pool and the first failure cancels the
// jobs that have not started. fn must only write to its own slot of
// caller-owned storage, which keeps output in index order regardless of
// scheduling. The error of the lowest failing index is returned; jobs that
// only saw the cancellation do not count as failures.
func ForEach(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	if workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > n {
		workers = n
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Failures are kept per slot; a cancelled pool may drop their results
	errs := make([]error, n)
	stopOnError := func(ctx context.Context, i int) error {
		err := fn(ctx, i)
		if err != nil {
			errs[i] = err
			cancel()
		}
		return err
	}

	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = &slotJob{index: i, fn: stopOnError}
	}

	pool := NewPool(ctx, workers)
	defer pool.Shutdown()
	results := pool.Run(jobs)

	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) {
			return err
		}
		if first == nil {
			first = err
		}
	}
	if err := parent.Err(); err != nil {
		return err
	}
	if first != nil {
		return first
	}

	if len(results) != n {
		return fmt.Errorf("worker pool returned %d of %d results", len(results), n)
	}
	return nil
}
