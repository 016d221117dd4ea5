package skytree

import "github.com/hupe1980/skybench/dominance"

// vector lets pivot selection run over plain and code-carrying points alike.
type vector interface {
	Values() []float32
}

// selectPivot chooses a skyline point with the minimal normalized-coordinate
// spread and moves it to data[0]. As a side effect every point dominated by
// the running head is removed with a swap-from-tail pop, and a final pass
// removes every remaining point dominated by the chosen pivot; the returned
// slice is the shrunk buffer.
//
// When a new head is found by right-dominance the cursor is reset to 1,
// re-testing already-seen points against it. That re-test is redundant but
// harmless; it is kept to stay equivalent with the reference behavior.
func selectPivot[T vector](data []T, mins, maxs []float32) []T {
	dims := len(mins)
	ranges := make([]float32, dims)
	for d := range ranges {
		ranges[d] = maxs[d] - mins[d]
	}

	tail := len(data) - 1
	cur := 1
	minDist := dominance.NormRange(data[0].Values(), mins, ranges)

	for cur <= tail {
		switch dominance.Compare(data[0].Values(), data[cur].Values()) {
		case dominance.Left:
			data[cur] = data[tail]
			data = data[:tail]
			tail--

		case dominance.Right:
			data[0] = data[cur]
			data[cur] = data[tail]
			data = data[:tail]
			tail--
			minDist = dominance.NormRange(data[0].Values(), mins, ranges)
			cur = 1

		default:
			curDist := dominance.NormRange(data[cur].Values(), mins, ranges)
			if curDist < minDist {
				if survivesPrefix(data, cur) {
					data[0], data[cur] = data[cur], data[0]
					minDist = curDist
					cur++
				} else {
					data[cur] = data[tail]
					data = data[:tail]
					tail--
				}
			} else {
				cur++
			}
		}
	}

	// A head installed by a swap was never compared against the points
	// before its old position; drop those it dominates.
	for i := 1; i < len(data); {
		if dominance.Compare(data[0].Values(), data[i].Values()) == dominance.Left {
			data[i] = data[len(data)-1]
			data = data[:len(data)-1]
		} else {
			i++
		}
	}
	return data
}

// survivesPrefix reports whether data[pos] is not dominated by any point in
// data[0..pos).
func survivesPrefix[T vector](data []T, pos int) bool {
	cur := data[pos].Values()
	for i := 0; i < pos; i++ {
		if dominance.DominatedLeft(cur, data[i].Values()) {
			return false
		}
	}
	return true
}
