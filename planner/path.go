// Package planner turns a scenario into a path of waypoints. The grid
// strategy runs A* over a discretized copy of the operating area; the
// visibility and straight strategies implement the same Planner contract so
// callers can swap them freely.
package planner

import (
	"dubins-planner/geometry"
	"dubins-planner/scenario"
)

// Path is an ordered list of waypoints. A planned path has at least two
// entries, starting at the scenario start and ending at its end.
type Path []geometry.Waypoint

// Segments returns consecutive waypoint pairs as line segments
func (p Path) Segments() []geometry.LineSegment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]geometry.LineSegment, len(p)-1)
	for i := 0; i < len(p)-1; i++ {
		segs[i] = geometry.LineSegment{P1: p[i].Point(), P2: p[i+1].Point()}
	}
	return segs
}

// Direct is the two-waypoint path from start to end
func Direct(s *scenario.Scenario) Path {
	return Path{s.Start(), s.End()}
}

// fromPoints builds a path whose interior waypoints face the next point.
// The first and last entries are the scenario waypoints unchanged.
func fromPoints(s *scenario.Scenario, points []geometry.Point) Path {
	path := make(Path, len(points))
	for i, pt := range points {
		heading := 0.0
		if i+1 < len(points) {
			heading = geometry.Heading(pt, points[i+1])
		}
		path[i] = geometry.Waypoint{X: pt.X, Y: pt.Y, Orientation: heading}
	}
	path[0] = s.Start()
	path[len(path)-1] = s.End()
	return path
}

// Planner produces a path for a scenario
type Planner interface {
	Plan(s *scenario.Scenario) Path
}

// Outcome tells which branch produced a path
type Outcome int

const (
	// OutcomeRoute is a path produced by the strategy itself
	OutcomeRoute Outcome = iota
	// OutcomeSearchExhausted means the open set emptied before the goal was
	// reached and the direct path was returned instead
	OutcomeSearchExhausted
	// OutcomePathTooComplex means the route had more waypoints than allowed
	// and the direct path was returned instead
	OutcomePathTooComplex
	// OutcomeBudgetExceeded means the caller's deadline passed first
	OutcomeBudgetExceeded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRoute:
		return "route"
	case OutcomeSearchExhausted:
		return "search_exhausted"
	case OutcomePathTooComplex:
		return "path_too_complex"
	case OutcomeBudgetExceeded:
		return "budget_exceeded"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Fallback reports whether the direct path replaced the strategy's result
func (o Outcome) Fallback() bool {
	return o != OutcomeRoute
}

// Result is a path plus how it was obtained
type Result struct {
	Path     Path    `json:"path"`
	Outcome  Outcome `json:"outcome"`
	Cost     float64 `json:"cost"`
	Expanded int     `json:"expanded"`
}

// ResultPlanner is implemented by planners that report their outcome
type ResultPlanner interface {
	Planner
	PlanResult(s *scenario.Scenario) Result
}

// resultOf asks p for a detailed result when it can give one
func resultOf(p Planner, s *scenario.Scenario) Result {
	if rp, ok := p.(ResultPlanner); ok {
		return rp.PlanResult(s)
	}
	path := p.Plan(s)
	return Result{
		Path:    path,
		Outcome: OutcomeRoute,
		Cost:    NewCostModel(s, DefaultObstaclePenalty, DefaultAreaPenalty).PathCost(path),
	}
}
