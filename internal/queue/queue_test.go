package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopKKeepsSmallestScores(t *testing.T) {
	q := NewTopK(3)
	scores := []float32{5, 1, 4, 2, 8, 3}
	for i, s := range scores {
		q.Offer(Item{Index: uint32(i), Score: s})
	}

	require.Equal(t, 3, q.Len())
	top, ok := q.Top()
	require.True(t, ok)
	assert.Equal(t, float32(3), top.Score)

	kept := map[float32]bool{}
	for _, item := range q.Drain() {
		kept[item.Score] = true
	}
	assert.Equal(t, map[float32]bool{1: true, 2: true, 3: true}, kept)
}

func TestTopKRejectsWorse(t *testing.T) {
	q := NewTopK(2)
	assert.True(t, q.Offer(Item{Index: 0, Score: 1}))
	assert.True(t, q.Offer(Item{Index: 1, Score: 2}))
	assert.False(t, q.Offer(Item{Index: 2, Score: 2}))
	assert.False(t, q.Offer(Item{Index: 3, Score: 9}))
	assert.True(t, q.Offer(Item{Index: 4, Score: 0.5}))

	top, ok := q.Top()
	require.True(t, ok)
	assert.Equal(t, float32(1), top.Score)
}

func TestTopKEmpty(t *testing.T) {
	q := NewTopK(4)
	assert.Equal(t, 0, q.Len())
	_, ok := q.Top()
	assert.False(t, ok)
	assert.Empty(t, q.Drain())
}
