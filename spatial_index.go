package main

import (
	"errors"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// pointTolerance is the half-width of the box each intersection occupies in the tree
const pointTolerance = 1e-9

// IntersectionEntry wraps an intersection for R-tree storage
type IntersectionEntry struct {
	ID    int
	Point Point
	BBox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *IntersectionEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// IntersectionIndex answers nearest and region queries over intersections
type IntersectionIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewIntersectionIndex indexes every intersection of the network
func NewIntersectionIndex(network RoadNetwork) *IntersectionIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, id := range network.IntersectionIDs() {
		p, ok := network.Intersection(id)
		if !ok {
			continue
		}
		tree.Insert(&IntersectionEntry{
			ID:    id,
			Point: p,
			BBox:  rtreego.Point{p.X, p.Y}.ToRect(pointTolerance),
		})
		size++
	}

	return &IntersectionIndex{tree: tree, size: size}
}

// Len returns the number of indexed intersections
func (idx *IntersectionIndex) Len() int { return idx.size }

// Nearest returns the intersection closest to p and its distance
func (idx *IntersectionIndex) Nearest(p Point) (int, float64, bool) {
	if idx.size == 0 {
		return -1, 0, false
	}

	item := idx.tree.NearestNeighbor(rtreego.Point{p.X, p.Y})
	if item == nil {
		return -1, 0, false
	}

	entry := item.(*IntersectionEntry)
	return entry.ID, p.Distance(entry.Point), true
}

// Within returns the ids of intersections inside box, in ascending order
func (idx *IntersectionIndex) Within(box BoundingBox) ([]int, error) {
	if box.MaxX < box.MinX || box.MaxY < box.MinY {
		return nil, errors.New("bounding box max is below min")
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{box.MinX - pointTolerance, box.MinY - pointTolerance},
		[]float64{box.MaxX - box.MinX + 2*pointTolerance, box.MaxY - box.MinY + 2*pointTolerance},
	)
	if err != nil {
		return nil, err
	}

	results := idx.tree.SearchIntersect(rect)
	ids := make([]int, 0, len(results))

	for _, item := range results {
		entry := item.(*IntersectionEntry)
		if box.Contains(entry.Point) {
			ids = append(ids, entry.ID)
		}
	}

	sort.Ints(ids)
	return ids, nil
}
