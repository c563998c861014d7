package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectionIndex_Nearest(t *testing.T) {
	m := Map40()
	idx := NewIntersectionIndex(m)
	require.Equal(t, 40, idx.Len())

	for _, id := range m.IntersectionIDs() {
		p := m.Intersections[id]
		got, dist, ok := idx.Nearest(Point{X: p.X + 1e-6, Y: p.Y - 1e-6})
		require.True(t, ok)
		assert.Equal(t, id, got)
		assert.Less(t, dist, 1e-5)
	}
}

func TestIntersectionIndex_NearestMatchesLinearScan(t *testing.T) {
	m := Map40()
	idx := NewIntersectionIndex(m)

	queries := []Point{{0, 0}, {1, 1}, {0.5, 0.5}, {0.3, 0.7}, {-2, 0.4}, {0.95, 0.05}}
	for _, q := range queries {
		want, wantDist := -1, 0.0
		for _, id := range m.IntersectionIDs() {
			d := q.Distance(m.Intersections[id])
			if want == -1 || d < wantDist {
				want, wantDist = id, d
			}
		}

		got, dist, ok := idx.Nearest(q)
		require.True(t, ok)
		assert.Equal(t, want, got, "query %v", q)
		assert.InDelta(t, wantDist, dist, 1e-12)
	}
}

func TestIntersectionIndex_Empty(t *testing.T) {
	idx := NewIntersectionIndex(NewRoadMap(nil, nil))
	_, _, ok := idx.Nearest(Point{0, 0})
	assert.False(t, ok)
}

func TestIntersectionIndex_Within(t *testing.T) {
	m := NewRoadMap(map[int]Point{
		0: {0, 0},
		1: {1, 1},
		2: {2, 2},
		3: {1, 0.5},
		4: {5, 5},
	}, nil)
	idx := NewIntersectionIndex(m)

	ids, err := idx.Within(BoundingBox{MinX: 0.5, MinY: 0.5, MaxX: 2, MaxY: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	ids, err = idx.Within(BoundingBox{MinX: 1, MinY: 1, MaxX: 1, MaxY: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids, "a degenerate box still finds the point on it")

	ids, err = idx.Within(BoundingBox{MinX: 10, MinY: 10, MaxX: 11, MaxY: 11})
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = idx.Within(BoundingBox{MinX: 2, MinY: 0, MaxX: 1, MaxY: 1})
	assert.Error(t, err)
}
