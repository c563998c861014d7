package main

import (
	"errors"
	"fmt"
	"log"
	"math"
)

var (
	// ErrMissingInput is returned when a search is requested before the
	// graph, start and goal are all set.
	ErrMissingInput = errors.New("missing search input")

	// ErrInvalidState is returned when a start or goal is not an
	// intersection of the current graph.
	ErrInvalidState = errors.New("invalid planner state")
)

// Result is the outcome of a search. When Found is false, Path is nil.
type Result struct {
	Path     []int   `json:"path"`
	Cost     float64 `json:"cost"`
	Expanded int     `json:"expanded"` // intersections moved to the closed set
	Found    bool    `json:"found"`
}

type plannerOptions struct {
	start *int
	goal  *int
}

// Option configures a PathPlanner at construction
type Option func(*plannerOptions)

// WithStart sets the start intersection
func WithStart(id int) Option {
	return func(o *plannerOptions) { o.start = &id }
}

// WithGoal sets the goal intersection
func WithGoal(id int) Option {
	return func(o *plannerOptions) { o.goal = &id }
}

// PathPlanner finds the shortest route between two intersections of a
// road network with A* and a straight-line heuristic.
//
// The search runs as soon as the graph, start and goal are all known.
// Changing any of them discards the previous search state, so the result
// always belongs to the current combination. A PathPlanner is not safe
// for concurrent use; the network may be shared by many planners.
type PathPlanner struct {
	network RoadNetwork

	start    int
	goal     int
	hasStart bool
	hasGoal  bool

	state  *SearchState
	result *Result
}

// NewPathPlanner creates a planner for network. When both WithStart and
// WithGoal are given the search runs before NewPathPlanner returns.
func NewPathPlanner(network RoadNetwork, opts ...Option) (*PathPlanner, error) {
	var cfg plannerOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &PathPlanner{network: network}

	if cfg.start != nil {
		if err := p.checkIntersection(*cfg.start); err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		p.start, p.hasStart = *cfg.start, true
	}
	if cfg.goal != nil {
		if err := p.checkIntersection(*cfg.goal); err != nil {
			return nil, fmt.Errorf("goal: %w", err)
		}
		p.goal, p.hasGoal = *cfg.goal, true
	}

	if p.hasStart && p.hasGoal {
		if _, err := p.RunSearch(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetGraph replaces the road network. Start and goal are cleared.
func (p *PathPlanner) SetGraph(network RoadNetwork) {
	p.network = network
	p.hasStart = false
	p.hasGoal = false
	p.reset()
}

// SetStart sets the start intersection and clears the goal. No search runs.
func (p *PathPlanner) SetStart(id int) error {
	if err := p.checkIntersection(id); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	p.start, p.hasStart = id, true
	p.hasGoal = false
	p.reset()
	return nil
}

// SetGoal sets the goal intersection, keeping the start. If the start is
// set the search runs immediately.
func (p *PathPlanner) SetGoal(id int) error {
	if err := p.checkIntersection(id); err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	p.goal, p.hasGoal = id, true
	p.reset()

	if !p.hasStart {
		return nil
	}
	_, err := p.RunSearch()
	return err
}

// RunSearch computes the route from start to goal from a fresh search state.
// An unreachable goal is reported through Result.Found, not as an error.
func (p *PathPlanner) RunSearch() (Result, error) {
	switch {
	case p.network == nil:
		return Result{}, fmt.Errorf("%w: graph not set", ErrMissingInput)
	case !p.hasGoal:
		return Result{}, fmt.Errorf("%w: goal not set", ErrMissingInput)
	case !p.hasStart:
		return Result{}, fmt.Errorf("%w: start not set", ErrMissingInput)
	}

	state := newSearchState(p.network, p.start, p.goal)
	result := state.search(p.network, p.goal)

	p.state = state
	p.result = &result

	if !result.Found {
		log.Printf("❌ No path found from %d to %d (%d intersections expanded)\n",
			p.start, p.goal, result.Expanded)
	}

	return result, nil
}

// Path returns the route found by the last search. It returns false when
// no search has run or the goal is unreachable.
func (p *PathPlanner) Path() ([]int, bool) {
	if p.result == nil || !p.result.Found {
		return nil, false
	}
	path := make([]int, len(p.result.Path))
	copy(path, p.result.Path)
	return path, true
}

// Result returns the last search result, if a search has run
func (p *PathPlanner) Result() (Result, bool) {
	if p.result == nil {
		return Result{}, false
	}
	r := *p.result
	r.Path = append([]int(nil), p.result.Path...)
	return r, true
}

// Start returns the start intersection
func (p *PathPlanner) Start() (int, bool) { return p.start, p.hasStart }

// Goal returns the goal intersection
func (p *PathPlanner) Goal() (int, bool) { return p.goal, p.hasGoal }

// Heuristic estimates the remaining cost from id to the goal
func (p *PathPlanner) Heuristic(id int) float64 {
	if p.network == nil || !p.hasGoal {
		return math.Inf(1)
	}
	return distanceBetween(p.network, id, p.goal)
}

func (p *PathPlanner) checkIntersection(id int) error {
	if p.network == nil {
		return fmt.Errorf("%w: graph not set", ErrMissingInput)
	}
	if _, ok := p.network.Intersection(id); !ok {
		return fmt.Errorf("%w: intersection %d not in graph", ErrInvalidState, id)
	}
	return nil
}

// reset drops the search state and result together
func (p *PathPlanner) reset() {
	p.state = nil
	p.result = nil
}

// PathCost sums the straight-line lengths of consecutive path legs
func PathCost(network RoadNetwork, path []int) float64 {
	cost := 0.0
	for i := 0; i+1 < len(path); i++ {
		cost += distanceBetween(network, path[i], path[i+1])
	}
	return cost
}
