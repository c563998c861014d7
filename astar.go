package main

import (
	"container/heap"
	"math"
	"sort"
)

// openEntry is an intersection waiting in the open set
type openEntry struct {
	NodeID int     // ID of the intersection in the road map
	F      float64 // fScore at the time of the last update
	Index  int     // Index in the heap
}

// PriorityQueue implements heap.Interface for the open set.
// Entries are ordered by fScore; equal scores go to the lowest id.
type PriorityQueue []*openEntry

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	return pq[i].NodeID < pq[j].NodeID
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	entry := x.(*openEntry)
	entry.Index = n
	*pq = append(*pq, entry)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.Index = -1
	*pq = old[0 : n-1]
	return entry
}

// OpenSet holds discovered intersections that are not finalized yet
type OpenSet struct {
	queue   PriorityQueue
	entries map[int]*openEntry
}

func newOpenSet() *OpenSet {
	o := &OpenSet{entries: make(map[int]*openEntry)}
	heap.Init(&o.queue)
	return o
}

// Len returns the number of open intersections
func (o *OpenSet) Len() int { return o.queue.Len() }

// Contains reports whether id is in the open set
func (o *OpenSet) Contains(id int) bool {
	_, ok := o.entries[id]
	return ok
}

// Add inserts id with the given fScore. Adding an open id is a no-op.
func (o *OpenSet) Add(id int, f float64) {
	if o.Contains(id) {
		return
	}
	entry := &openEntry{NodeID: id, F: f}
	heap.Push(&o.queue, entry)
	o.entries[id] = entry
}

// Update changes the fScore of an open id
func (o *OpenSet) Update(id int, f float64) {
	entry, ok := o.entries[id]
	if !ok {
		return
	}
	entry.F = f
	heap.Fix(&o.queue, entry.Index)
}

// Min returns the open id with the lowest fScore
func (o *OpenSet) Min() (int, bool) {
	if o.queue.Len() == 0 {
		return 0, false
	}
	return o.queue[0].NodeID, true
}

// Remove takes id out of the open set
func (o *OpenSet) Remove(id int) {
	entry, ok := o.entries[id]
	if !ok {
		return
	}
	heap.Remove(&o.queue, entry.Index)
	delete(o.entries, id)
}

// IDs returns the open ids in ascending order
func (o *OpenSet) IDs() []int {
	ids := make([]int, 0, len(o.entries))
	for id := range o.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SearchState is the complete bookkeeping of one A* run.
// The planner replaces it as a whole and never edits it after a search.
type SearchState struct {
	Open     *OpenSet
	Closed   map[int]bool
	CameFrom map[int]int
	GScore   map[int]float64
	FScore   map[int]float64
}

// newSearchState prepares the state for a search from start to goal:
// every intersection starts at +Inf except the start itself.
func newSearchState(network RoadNetwork, start, goal int) *SearchState {
	ids := network.IntersectionIDs()
	s := &SearchState{
		Open:     newOpenSet(),
		Closed:   make(map[int]bool),
		CameFrom: make(map[int]int),
		GScore:   make(map[int]float64, len(ids)),
		FScore:   make(map[int]float64, len(ids)),
	}

	for _, id := range ids {
		s.GScore[id] = math.Inf(1)
		s.FScore[id] = math.Inf(1)
	}
	s.GScore[start] = 0
	s.FScore[start] = distanceBetween(network, start, goal)
	s.Open.Add(start, s.FScore[start])

	return s
}

func (s *SearchState) gScore(id int) float64 {
	if g, ok := s.GScore[id]; ok {
		return g
	}
	return math.Inf(1)
}

func (s *SearchState) fScore(id int) float64 {
	if f, ok := s.FScore[id]; ok {
		return f
	}
	return math.Inf(1)
}

// search runs A* until the goal is selected or the open set is exhausted
func (s *SearchState) search(network RoadNetwork, goal int) Result {
	expanded := 0

	for s.Open.Len() > 0 {
		current, _ := s.Open.Min()

		if current == goal {
			return Result{
				Path:     s.reconstructPath(current),
				Cost:     s.gScore(current),
				Expanded: expanded,
				Found:    true,
			}
		}

		s.Open.Remove(current)
		s.Closed[current] = true
		expanded++

		for _, neighbor := range network.Roads(current) {
			if s.Closed[neighbor] {
				continue
			}
			if _, ok := network.Intersection(neighbor); !ok {
				continue
			}

			if !s.Open.Contains(neighbor) {
				s.Open.Add(neighbor, s.fScore(neighbor))
			}

			tentativeG := s.gScore(current) + distanceBetween(network, current, neighbor)
			if tentativeG >= s.gScore(neighbor) {
				continue
			}

			s.CameFrom[neighbor] = current
			s.GScore[neighbor] = tentativeG
			s.FScore[neighbor] = tentativeG + distanceBetween(network, neighbor, goal)
			s.Open.Update(neighbor, s.FScore[neighbor])
		}
	}

	return Result{Expanded: expanded}
}

// reconstructPath follows cameFrom back from current and returns the path start first
func (s *SearchState) reconstructPath(current int) []int {
	path := []int{current}
	for {
		previous, ok := s.CameFrom[current]
		if !ok {
			break
		}
		path = append(path, previous)
		current = previous
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
