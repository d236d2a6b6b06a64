package introspect

import (
	"context"
	"sync"

	"ormreveal/internal/pool"
)

// BatchSize is the fixed partition width for bounded-parallel
// batch-detail reads.
const BatchSize = 10

// TableDetailFunc fills in the per-table detail (columns, indexes,
// foreign keys) for the table at position idx, using conn for every
// catalog round-trip. Reads within one batch are strictly sequential
// because they share a single connection; batches themselves run in
// parallel.
type TableDetailFunc func(ctx context.Context, conn *pool.Conn, idx int) error

// RunBatches partitions [0, n) into fixed-size batches, acquires one
// dedicated connection per batch from p, and runs fn sequentially
// within each batch while batches run concurrently. Batch dispatch is
// bounded to p.Max() at a time — one dedicated connection per running
// batch — so a schema with more batches than the pool's total-count
// ceiling queues the excess instead of failing Acquire with "pool
// exhausted". The first error from any batch cancels the shared
// context and is returned once every already-dispatched worker has
// settled. RunBatches does not clear the pool itself; the dialect
// readers call Clear when it returns an error.
func RunBatches(ctx context.Context, p *pool.Pool, connStr string, n int, fn TableDetailFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	setErr := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	sem := make(chan struct{}, p.Max())

	for start := 0; start < n; start += BatchSize {
		end := start + BatchSize
		if end > n {
			end = n
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			defer func() { <-sem }()

			conn, err := p.Acquire(ctx, connStr)
			if err != nil {
				setErr(err)
				return
			}
			defer p.Release(conn)

			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := fn(ctx, conn, i); err != nil {
					setErr(err)
					return
				}
			}
		}(start, end)
	}

	wg.Wait()
	return firstErr
}
