package point

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	rows := [][]float32{{1, 2}, {3, 4}, {5, 6}}
	pts := FromRows(rows)

	require.Len(t, pts, 3)
	for i, p := range pts {
		assert.Equal(t, uint32(i), p.ID)
		assert.Equal(t, rows[i], p.Elems)
	}

	// The buffer is owned: mutating it must not touch the input rows.
	pts[0].Elems[0] = 42
	assert.Equal(t, float32(1), rows[0][0])

	assert.Nil(t, FromRows(nil))
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, float32(6), Manhattan([]float32{1, 2, 3}))
	assert.Equal(t, float32(0), Manhattan(nil))
}

func TestEncodedPartition(t *testing.T) {
	const dims = 4
	var e Encoded

	e.SetPartition(0b1011, dims)
	assert.Equal(t, uint32(3), e.Level(dims))
	assert.Equal(t, uint32(0b1011), e.Mask(dims))
	assert.False(t, e.Pruned(dims))

	// The packed word orders by (level, mask): any level-1 code sorts
	// before any level-2 code.
	var lo, hi Encoded
	lo.SetPartition(0b1000, dims)
	hi.SetPartition(0b0011, dims)
	assert.Less(t, lo.Partition, hi.Partition)
}

func TestEncodedPruned(t *testing.T) {
	const dims = 4
	var e Encoded

	// The sentinel sorts after every live encoding, so pruned points
	// collect at the back of a sorted block.
	var worst Encoded
	worst.SetPartition(0b1111, dims) // highest live level: every bit set
	e.MarkPruned(dims)
	assert.True(t, e.Pruned(dims))
	assert.Greater(t, e.Partition, worst.Partition)
}

func TestEncodedCanSkip(t *testing.T) {
	const dims = 3
	var e Encoded
	e.SetPartition(0b011, dims)

	// A partition with a bit e lacks cannot contain a dominator.
	assert.True(t, e.CanSkip(0b100, dims))
	assert.True(t, e.CanSkip(0b110, dims))
	// Sub-mask partitions must be inspected.
	assert.False(t, e.CanSkip(0b011, dims))
	assert.False(t, e.CanSkip(0b001, dims))
	assert.False(t, e.CanSkip(0, dims))
}

func TestAllOnes(t *testing.T) {
	assert.Equal(t, uint32(0b111), AllOnes(3))
	assert.Equal(t, uint32(1)<<31-1, AllOnes(MaxDims))
}
