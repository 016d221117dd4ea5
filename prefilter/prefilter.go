// Package prefilter implements the priority-queue pre-filter that the
// Hybrid engine runs before partitioning. Each worker keeps the K points
// with the lowest Manhattan norms in a bounded max-heap; the union of all
// heaps is then used to prune the bulk of the dominated points in one
// parallel sweep.
package prefilter

import (
	"github.com/hupe1980/skybench/dominance"
	"github.com/hupe1980/skybench/internal/parallel"
	"github.com/hupe1980/skybench/internal/queue"
	"github.com/hupe1980/skybench/point"
)

// Execute scores every point (side effect: Score is stored), prunes points
// dominated by one of the collected low-norm pruners, and compacts the
// survivors to the front of data. It returns the new point count.
//
// pqSize is clamped to 1 when the input is smaller than one queue.
func Execute(data []point.Encoded, dims, pqSize, workers int) int {
	n := len(data)
	if n == 0 {
		return 0
	}
	if pqSize > n {
		pqSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	// Seed every queue with the first pqSize points.
	heaps := make([]*queue.TopK, workers)
	for w := range heaps {
		heaps[w] = queue.NewTopK(pqSize)
	}
	for i := 0; i < pqSize; i++ {
		data[i].Score = point.Manhattan(data[i].Elems)
		for _, h := range heaps {
			h.Offer(queue.Item{Index: uint32(i), Score: data[i].Score})
		}
	}

	// Each worker scores its chunk and keeps its own top-K by lowest norm.
	parallel.Chunks(workers, 0, n, func(w, lo, hi int) {
		h := heaps[w]
		worst, _ := h.Top()
		for i := lo; i < hi; i++ {
			sum := point.Manhattan(data[i].Elems)
			data[i].Score = sum
			if worst.Score > sum {
				h.Offer(queue.Item{Index: uint32(i), Score: sum})
				worst, _ = h.Top()
			}
		}
	})

	// Merge all queues into one flat pruner list.
	pruners := make([]uint32, 0, workers*pqSize)
	for _, h := range heaps {
		for _, item := range h.Drain() {
			pruners = append(pruners, item.Index)
		}
	}

	// Mark every point dominated by a pruner. DVC is not assumed yet, so
	// the strict one-way test keeps duplicates alive.
	parallel.For(workers, 0, n, func(i int) {
		for _, p := range pruners {
			if dominance.DominateLeft(data[p].Elems, data[i].Elems) {
				data[i].MarkPruned(dims)
				break
			}
		}
	})

	// Compact with swap-from-tail pops.
	newN := n
	for i := 0; i < newN; i++ {
		if data[i].Pruned(dims) {
			data[i] = data[newN-1]
			newN--
			i--
		}
	}
	return newN
}
