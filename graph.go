package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownIntersection is returned when a road references an id that has no coordinates
var ErrUnknownIntersection = errors.New("unknown intersection")

// RoadNetwork is the read-only view of a road graph the planner searches.
// Roads are directed as listed: a→b does not imply b→a.
type RoadNetwork interface {
	Intersection(id int) (Point, bool)
	Roads(id int) []int
	IntersectionIDs() []int
}

// RoadMap is a road graph with intersection coordinates and adjacency lists
type RoadMap struct {
	Intersections map[int]Point
	Adjacency     map[int][]int // IDs of intersections reachable from the key
}

// NewRoadMap creates a road map from coordinates and adjacency lists
func NewRoadMap(intersections map[int]Point, adjacency map[int][]int) *RoadMap {
	if intersections == nil {
		intersections = make(map[int]Point)
	}
	if adjacency == nil {
		adjacency = make(map[int][]int)
	}
	return &RoadMap{Intersections: intersections, Adjacency: adjacency}
}

// Intersection returns the coordinates of an intersection
func (m *RoadMap) Intersection(id int) (Point, bool) {
	p, ok := m.Intersections[id]
	return p, ok
}

// Roads returns the intersections directly reachable from id, in listed order
func (m *RoadMap) Roads(id int) []int {
	return m.Adjacency[id]
}

// IntersectionIDs returns all intersection ids in ascending order
func (m *RoadMap) IntersectionIDs() []int {
	ids := make([]int, 0, len(m.Intersections))
	for id := range m.Intersections {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Distance calculates the Euclidean distance between two intersections.
// Unknown ids yield +Inf.
func (m *RoadMap) Distance(a, b int) float64 {
	return distanceBetween(m, a, b)
}

// Validate checks that every id used in the adjacency lists has coordinates
func (m *RoadMap) Validate() error {
	for _, from := range sortedKeys(m.Adjacency) {
		if _, ok := m.Intersections[from]; !ok {
			return fmt.Errorf("%w: road source %d", ErrUnknownIntersection, from)
		}
		for _, to := range m.Adjacency[from] {
			if _, ok := m.Intersections[to]; !ok {
				return fmt.Errorf("%w: road %d→%d", ErrUnknownIntersection, from, to)
			}
		}
	}
	return nil
}

// RoadCount returns the number of directed road entries
func (m *RoadMap) RoadCount() int {
	n := 0
	for _, neighbors := range m.Adjacency {
		n += len(neighbors)
	}
	return n
}

// LineStrings returns the roads as line segments for display.
// A road listed in both directions is returned once.
func (m *RoadMap) LineStrings() [][]Point {
	lines := make([][]Point, 0)

	type edgeKey struct{ a, b int }
	seen := make(map[edgeKey]bool)

	for _, from := range sortedKeys(m.Adjacency) {
		for _, to := range m.Adjacency[from] {
			key := edgeKey{from, to}
			if to < from {
				key = edgeKey{to, from}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			p1, ok1 := m.Intersections[from]
			p2, ok2 := m.Intersections[to]
			if ok1 && ok2 {
				lines = append(lines, []Point{p1, p2})
			}
		}
	}

	return lines
}

// distanceBetween is the edge cost and heuristic for any RoadNetwork
func distanceBetween(network RoadNetwork, a, b int) float64 {
	p1, ok1 := network.Intersection(a)
	p2, ok2 := network.Intersection(b)
	if !ok1 || !ok2 {
		return math.Inf(1)
	}
	return p1.Distance(p2)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
