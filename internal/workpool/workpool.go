// Package workpool provides the fixed-size worker pool shared by all scans.
//
// A Pool is built once at process start and handed to whatever needs
// data-parallel fan-out. It owns no goroutines between calls; each Run
// spawns at most Size workers and waits for all of them before returning.
package workpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the parallelism of fan-out/fan-in work
type Pool struct {
	workers int
}

// New creates a pool with the given number of workers.
// Zero or negative means one worker per CPU.
func New(workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// Size returns the maximum number of tasks run concurrently
func (p *Pool) Size() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Run calls fn(i) for every i in [0, n) with at most Size calls in flight
// and blocks until all of them return. The first non-nil error is returned
// and cancels ctx for the remaining tasks.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.Size())

	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}

	return eg.Wait()
}

// Chunks splits [0, total) into at most Size contiguous ranges of roughly
// equal length. Each range is returned as a [start, end) pair.
func (p *Pool) Chunks(total int) [][2]int {
	if total <= 0 {
		return nil
	}

	parts := p.Size()
	if parts > total {
		parts = total
	}

	chunks := make([][2]int, 0, parts)
	step := (total + parts - 1) / parts
	for start := 0; start < total; start += step {
		end := start + step
		if end > total {
			end = total
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}
