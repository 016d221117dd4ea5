// Package parallel implements the fork-join loops used by every parallel
// skyline phase. Each phase is a bounded loop with independent iteration
// bodies writing to disjoint slots; a phase ends when all workers return.
package parallel

import "golang.org/x/sync/errgroup"

// For runs fn(i) for every i in [start, end), split into at most workers
// contiguous chunks. fn must only write state owned by index i. With one
// worker (or a single-element range) the loop runs inline, so workers=1
// produces bit-identical behavior to the sequential code.
func For(workers, start, end int, fn func(i int)) {
	Chunks(workers, start, end, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// Chunks splits [start, end) into at most workers contiguous chunks and runs
// body(worker, lo, hi) for each. Used directly when a phase needs a
// per-worker accumulator alongside its index range.
func Chunks(workers, start, end int, body func(worker, lo, hi int)) {
	n := end - start
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		body(0, start, end)
		return
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := start + w*chunk
		hi := lo + chunk
		if hi > end {
			hi = end
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			body(w, lo, hi)
			return nil
		})
	}
	_ = g.Wait() // bodies do not fail
}
