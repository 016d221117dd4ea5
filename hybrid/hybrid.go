// Package hybrid implements the two-level partitioning, score-sorted
// parallel skyline pipeline.
//
// The engine prunes the bulk of the input with the priority-queue
// pre-filter, assigns every survivor to one of the 2^d orthants around the
// per-dimension medians, and sorts by the encoded (level, mask, score)
// word. It then processes the buffer in alpha-sized blocks, alternating a
// parallel phase against the confirmed skyline prefix (walked through a
// two-level partition map), a sequential compression, a parallel phase
// among the block peers, and a final compression that appends the block's
// survivors to the prefix.
package hybrid

import (
	"slices"
	"sync/atomic"

	"github.com/hupe1980/skybench/dominance"
	"github.com/hupe1980/skybench/internal/parallel"
	"github.com/hupe1980/skybench/point"
	"github.com/hupe1980/skybench/prefilter"
)

// Name is the harness identifier of the engine.
const Name = "hybrid"

const (
	// DefaultAlpha is the default block size of the pipeline.
	DefaultAlpha = 1024
	// DefaultPQSize is the default per-worker capacity of the pre-filter
	// queues.
	DefaultPQSize = 8
)

// Option configures a Hybrid engine.
type Option func(*Hybrid)

// WithAlpha sets the block size of the pipelined sweep.
func WithAlpha(alpha int) Option {
	return func(h *Hybrid) { h.alpha = alpha }
}

// WithPQSize sets the per-worker queue capacity of the pre-filter.
func WithPQSize(size int) Option {
	return func(h *Hybrid) { h.pqSize = size }
}

// partEntry marks the start of a run of equal-lattice-code points in the
// confirmed skyline prefix. The last entry is a sentinel closing the final
// run.
type partEntry struct {
	code  uint32
	start int
}

// Hybrid is the multi-phase parallel skyline engine.
type Hybrid struct {
	workers int
	dims    int
	alpha   int
	pqSize  int

	data    []point.Encoded
	partMap []partEntry
}

// New copies rows into an owned buffer and prepares an engine run with the
// given worker count.
func New(rows [][]float32, workers int, opts ...Option) *Hybrid {
	if workers < 1 {
		workers = 1
	}
	h := &Hybrid{
		workers: workers,
		alpha:   DefaultAlpha,
		pqSize:  DefaultPQSize,
		data:    point.EncodedFromRows(rows),
	}
	if len(rows) > 0 {
		h.dims = len(rows[0])
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the harness identifier of the engine.
func (h *Hybrid) Name() string { return Name }

// Execute computes the skyline and returns the ids of the surviving points.
func (h *Hybrid) Execute() []uint32 {
	n := len(h.data)
	if n == 0 {
		return nil
	}
	if n < h.alpha {
		h.alpha = n / 2
		if h.alpha < 1 {
			h.alpha = 1
		}
	}

	n = prefilter.Execute(h.data, h.dims, h.pqSize, h.workers)
	h.data = h.data[:n]

	h.partitionByMedian()
	slices.SortFunc(h.data, encodedCmp)

	survivors := h.skyline()
	out := make([]uint32, 0, survivors)
	for i := 0; i < survivors; i++ {
		out = append(out, h.data[i].ID)
	}
	return out
}

// encodedCmp orders points by the packed (level, mask) word, then by score.
func encodedCmp(a, b point.Encoded) int {
	switch {
	case a.Partition < b.Partition:
		return -1
	case a.Partition > b.Partition:
		return 1
	case a.Score < b.Score:
		return -1
	case a.Score > b.Score:
		return 1
	}
	return 0
}

// partitionByMedian assigns every point to the median-axis orthant it falls
// into, encoded with its level.
func (h *Hybrid) partitionByMedian() {
	n := len(h.data)
	median := make([]float32, h.dims)
	parallel.For(h.workers, 0, h.dims, func(d int) {
		col := make([]float32, n)
		for i := range h.data {
			col[i] = h.data[i].Elems[d]
		}
		slices.Sort(col)
		median[d] = col[n/2]
	})

	parallel.For(h.workers, 0, n, func(i int) {
		h.data[i].SetPartition(dominance.BitmapNDVC(h.data[i].Elems, median), h.dims)
	})
}

// skyline overwrites the data buffer so that the skyline occupies the front
// and returns its size.
func (h *Hybrid) skyline() int {
	n := len(h.data)
	dims := h.dims

	// data[0..head) holds confirmed skyline tuples; data[start..stop)
	// is the current working block. The first block contains index 0,
	// which survives its self-comparison through the equality test.
	head := 0
	start := 0
	first := h.data[0].Mask(dims)
	h.partMap = append(h.partMap[:0], partEntry{first, 0}, partEntry{first, 1})

	for start < n {
		stop := start + h.alpha
		if stop > n {
			stop = n
		}

		// Phase I: test each block point against the confirmed skyline.
		parallel.For(h.workers, start, stop, func(i int) {
			h.compareToSkyline(&h.data[i])
		})

		// Compress: pruned encodings sort to the back of the block.
		slices.SortFunc(h.data[start:stop], encodedCmp)
		i := start
		for i < stop && !h.data[i].Pruned(dims) {
			i++
		}
		stop = i

		// Phase II: confirm the candidates against each other. Dominated
		// peers are flagged in a side array so the block stays read-only
		// for the duration of the phase.
		marks := make([]atomic.Bool, stop-start)
		parallel.For(h.workers, start, stop, func(i int) {
			if h.comparedToPeers(i, start, marks) {
				marks[i-start].Store(true)
			}
		})
		for i := start; i < stop; i++ {
			if marks[i-start].Load() {
				h.data[i].MarkPruned(dims)
			}
		}

		// Compress again and append the survivors to the prefix.
		headOld := head
		slices.SortFunc(h.data[start:stop], encodedCmp)
		for i := start; i < stop && !h.data[i].Pruned(dims); i++ {
			h.data[head] = h.data[i]
			head++
		}
		h.updatePartitionMap(headOld, head)
		start += h.alpha
	}
	return head
}

// compareToSkyline tests t against all confirmed skyline points through the
// two-level partition map, marking t pruned if a dominating point is found.
// The confirmed prefix holds distinct values only, so partitions whose code
// has a bit t lacks cannot dominate t and are skipped wholesale.
func (h *Hybrid) compareToSkyline(t *point.Encoded) {
	dims := h.dims
	allOnes := point.AllOnes(dims)
	for pi := 0; pi+1 < len(h.partMap); pi++ {
		e := h.partMap[pi]
		if t.CanSkip(e.code, dims) {
			continue
		}
		begin := e.start
		end := h.partMap[pi+1].start

		// The run head doubles as a secondary pivot: its comparison
		// bitmap decides which run members can be skipped below.
		bitmap := dominance.BitmapDVC(t.Elems, h.data[begin].Elems)
		if bitmap == allOnes && !dominance.Equal(t.Elems, h.data[begin].Elems) {
			t.MarkPruned(dims)
			return
		}

		// Run members carry a fine mask against the run head. A member
		// with a set bit where t's bitmap has a clear one cannot
		// dominate t.
		for i := begin + 1; i < end; i++ {
			if ^bitmap&h.data[i].Partition == 0 || h.data[i].Partition == 0 {
				if dominance.DominateLeft(h.data[i].Elems, t.Elems) {
					t.MarkPruned(dims)
					return
				}
			}
		}
	}
}

// comparedToPeers reports whether block point me is dominated by an earlier
// peer. Peers with a lower level are tested under the distinct value
// condition with the orthant skip; same-level peers in other partitions
// cannot dominate me; same-partition peers are tested up to me's score.
func (h *Hybrid) comparedToPeers(me, start int, marks []atomic.Bool) bool {
	data := h.data
	dims := h.dims
	myLev := data[me].Level(dims)

	i := start
	for ; i < me; i++ {
		if marks[i-start].Load() {
			continue
		}
		if data[i].Level(dims) == myLev {
			break
		}
		if !data[me].CanSkip(data[i].Mask(dims), dims) {
			if dominance.DominateLeftDVC(data[i].Elems, data[me].Elems) {
				return true
			}
		}
	}

	for ; data[i].Mask(dims) < data[me].Mask(dims); i++ {
	}

	for ; data[i].Score < data[me].Score; i++ {
		if dominance.DominateLeftDVC(data[i].Elems, data[me].Elems) {
			return true
		}
	}
	return false
}

// updatePartitionMap extends the partition map with the confirmed points in
// [start, end). The first point of each new code run becomes the run head;
// every other point gets a secondary fine mask against its run head, used
// by the Phase I skip test. The secondary mask overwrites the encoded word,
// which is safe because confirmed points are never sorted again.
func (h *Hybrid) updatePartitionMap(start, end int) {
	dims := h.dims
	h.partMap = h.partMap[:len(h.partMap)-1] // drop sentinel
	last := h.partMap[len(h.partMap)-1]
	lastVal, partStart := last.code, last.start

	for i := start; i < end; i++ {
		if mask := h.data[i].Mask(dims); mask != lastVal {
			lastVal = mask
			partStart = i
			h.partMap = append(h.partMap, partEntry{mask, i})
		} else {
			h.data[i].Partition = dominance.BitmapDVC(h.data[i].Elems, h.data[partStart].Elems)
		}
	}

	h.partMap = append(h.partMap, partEntry{0, end}) // restore sentinel
}
