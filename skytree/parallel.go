package skytree

import (
	"sync/atomic"

	"github.com/hupe1980/skybench/dominance"
	"github.com/hupe1980/skybench/internal/parallel"
	"github.com/hupe1980/skybench/point"
)

// ParallelName is the harness identifier of the parallel engine.
const ParallelName = "pbskytree"

// parallelBlock is the number of head candidates processed per parallel
// round.
const parallelBlock = 256

// ParallelBSkyTree parallelizes the SkyTree inner loop: one pivot
// selection, a flat lattice-code partitioning stored per point, then a
// block-pipelined sweep where candidate heads are compared against the tail
// in parallel. Partial dominance at the region level skips pairs whose
// codes are not in a sub-mask relation.
type ParallelBSkyTree struct {
	workers int
	dims    int

	data    []point.Coded
	eqm     []uint32
	skyline []uint32
}

// NewParallel copies rows into an owned buffer and prepares an engine run
// with the given worker count.
func NewParallel(rows [][]float32, workers int) *ParallelBSkyTree {
	if workers < 1 {
		workers = 1
	}
	p := &ParallelBSkyTree{
		workers: workers,
		data:    point.CodedFromRows(rows),
	}
	if len(rows) > 0 {
		p.dims = len(rows[0])
	}
	return p
}

// Name returns the harness identifier of the engine.
func (p *ParallelBSkyTree) Name() string { return ParallelName }

// Execute computes the skyline and returns the ids of the surviving points.
func (p *ParallelBSkyTree) Execute() []uint32 {
	if len(p.data) == 0 {
		return nil
	}

	mins := make([]float32, p.dims)
	maxs := make([]float32, p.dims)
	for d := range maxs {
		maxs[d] = 1.0
	}
	p.data = selectPivot(p.data, mins, maxs)

	p.partition()
	p.sweep()

	return append(p.skyline, p.eqm...)
}

// partition assigns each surviving point its lattice code against the pivot
// at data[0], collects pivot-equal points into the equivalence list, and
// drops points dominated by the pivot.
func (p *ParallelBSkyTree) partition() {
	allOnes := point.AllOnes(p.dims)
	data := p.data
	pivot := data[0]
	i := 1
	for i < len(data) {
		if dominance.Equal(pivot.Elems, data[i].Elems) {
			p.eqm = append(p.eqm, data[i].ID)
			data[i] = data[len(data)-1]
			data = data[:len(data)-1]
			continue
		}
		lattice := dominance.BitmapDVC(data[i].Elems, pivot.Elems)
		if lattice < allOnes {
			data[i].Partition = lattice
			i++
		} else {
			data[i] = data[len(data)-1]
			data = data[:len(data)-1]
		}
	}
	p.data = data
}

// sweep runs the block-pipelined parallel phase. During the parallel part
// the per-index dead array is the only cross-goroutine write surface; head
// slots are each owned by exactly one worker and the tail is read-only.
// The sequential parts re-read the whole buffer, compact it, and advance
// the confirmed prefix.
func (p *ParallelBSkyTree) sweep() {
	S := p.data
	n := len(S)
	dead := make([]atomic.Bool, n)

	head, tail := 1, n-1
	for head < tail {
		htail := head + parallelBlock - 1
		if htail > tail {
			htail = tail
		}

		parallel.For(p.workers, head, htail+1, func(th int) {
			cur := htail + 1
			for cur <= tail {
				if dead[cur].Load() {
					cur++
					continue
				}
				a, b := S[th].Partition, S[cur].Partition
				if a&b != a && a&b != b {
					cur++ // region-level incomparability
					continue
				}
				switch dominance.CompareDVC(S[th].Elems, S[cur].Elems) {
				case dominance.Left:
					dead[cur].Store(true)
					cur++
				case dominance.Right:
					dead[cur].Store(true)
					S[th] = S[cur]
					cur = htail + 1
				default:
					cur++ // point-level incomparability
				}
			}
		})

		// Resolve the block heads against each other sequentially. Right
		// dominance swaps may have copied one tuple into several head
		// slots, so identical ids collapse first.
		for th := head; th <= htail; th++ {
			c := th + 1
			for c <= htail {
				if S[th].ID == S[c].ID {
					dead[htail].Store(true)
					S[c] = S[htail]
					htail--
					continue
				}
				switch dominance.CompareDVC(S[th].Elems, S[c].Elems) {
				case dominance.Left:
					dead[htail].Store(true)
					S[c] = S[htail]
					htail--
				case dominance.Right:
					S[th] = S[c]
					dead[htail].Store(true)
					S[c] = S[htail]
					htail--
					c = th + 1
				default:
					c++
				}
			}
		}
		head = htail + 1

		// Compact dead tuples out of the unprocessed tail.
		headDead, tailAlive := head, tail
		for headDead < tailAlive {
			for !dead[headDead].Load() && headDead < tailAlive {
				headDead++
			}
			for dead[tailAlive].Load() {
				tailAlive--
			}
			if tailAlive > headDead {
				dead[headDead].Store(false)
				dead[tailAlive].Store(true)
				S[headDead] = S[tailAlive]
				headDead++
				tailAlive--
			}
		}
		tail = tailAlive
		for tail >= 0 && dead[tail].Load() {
			tail--
		}
	}

	for i := 0; i <= tail; i++ {
		p.skyline = append(p.skyline, S[i].ID)
	}
}
