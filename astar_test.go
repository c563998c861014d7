package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSet_MinOrdersByScoreThenID(t *testing.T) {
	o := newOpenSet()
	_, ok := o.Min()
	assert.False(t, ok)

	o.Add(7, 3.0)
	o.Add(4, 1.5)
	o.Add(9, 1.5)
	o.Add(2, math.Inf(1))

	id, ok := o.Min()
	require.True(t, ok)
	assert.Equal(t, 4, id)

	o.Remove(4)
	id, _ = o.Min()
	assert.Equal(t, 9, id)

	o.Update(2, 0.5)
	id, _ = o.Min()
	assert.Equal(t, 2, id)

	assert.Equal(t, []int{2, 7, 9}, o.IDs())
	assert.Equal(t, 3, o.Len())
}

func TestOpenSet_AddIsNoOpForOpenID(t *testing.T) {
	o := newOpenSet()
	o.Add(1, 5.0)
	o.Add(1, 0.1)
	o.Add(2, 1.0)

	id, _ := o.Min()
	assert.Equal(t, 2, id, "second Add must not lower the score")
	assert.Equal(t, 2, o.Len())
}

func TestOpenSet_UpdateAndRemoveUnknownID(t *testing.T) {
	o := newOpenSet()
	o.Add(1, 1.0)

	o.Update(5, 0.0)
	o.Remove(5)

	assert.Equal(t, 1, o.Len())
	assert.False(t, o.Contains(5))
}

func TestOpenSet_InfiniteScoresTieOnID(t *testing.T) {
	o := newOpenSet()
	for _, id := range []int{6, 3, 8} {
		o.Add(id, math.Inf(1))
	}

	for _, want := range []int{3, 6, 8} {
		id, ok := o.Min()
		require.True(t, ok)
		assert.Equal(t, want, id)
		o.Remove(id)
	}
	assert.Equal(t, 0, o.Len())
}

func TestNewSearchState(t *testing.T) {
	m := NewRoadMap(map[int]Point{0: {0, 0}, 1: {3, 4}, 2: {6, 8}}, map[int][]int{0: {1}, 1: {2}})

	st := newSearchState(m, 0, 2)

	assert.Equal(t, []int{0}, st.Open.IDs())
	assert.Empty(t, st.Closed)
	assert.Empty(t, st.CameFrom)
	assert.Equal(t, 0.0, st.GScore[0])
	assert.InDelta(t, 10.0, st.FScore[0], 1e-12)
	assert.True(t, math.IsInf(st.GScore[1], 1))
	assert.True(t, math.IsInf(st.FScore[2], 1))
	assert.True(t, math.IsInf(st.gScore(99), 1), "unknown ids score +Inf")
}

func TestSearchState_ReconstructPath(t *testing.T) {
	st := &SearchState{CameFrom: map[int]int{3: 2, 2: 7, 7: 0}}

	assert.Equal(t, []int{0, 7, 2, 3}, st.reconstructPath(3))
	assert.Equal(t, []int{0}, st.reconstructPath(0))
}

func TestSearchState_RoadToUnknownIntersectionIsIgnored(t *testing.T) {
	// 1 lists a road to 5, which has no coordinates.
	m := NewRoadMap(map[int]Point{0: {0, 0}, 1: {1, 0}, 2: {2, 0}}, map[int][]int{0: {1}, 1: {5, 2}})

	p, err := NewPathPlanner(m, WithStart(0), WithGoal(2))
	require.NoError(t, err)
	path, ok := p.Path()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, path)
}

func TestSearchState_UnknownIntersectionNotExpanded(t *testing.T) {
	// 2 is unreachable; 1 lists a road to 5, which has no coordinates.
	m := NewRoadMap(map[int]Point{0: {0, 0}, 1: {1, 0}, 2: {2, 0}}, map[int][]int{0: {1}, 1: {5}})

	st := newSearchState(m, 0, 2)
	result := st.search(m, 2)
	assert.False(t, result.Found)
	assert.Equal(t, 2, result.Expanded)
	assert.False(t, st.Closed[5])
	assert.False(t, st.Open.Contains(5))
}
