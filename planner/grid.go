package planner

import (
	"fmt"
	"log"

	"dubins-planner/geometry"
	"dubins-planner/scenario"
)

const (
	DefaultDiscretization = 50
	// DefaultMaxWaypoints caps route length for consumers with fixed-size
	// waypoint buffers
	DefaultMaxWaypoints = 12
)

// Config tunes the grid planner
type Config struct {
	// Discretization is the grid size N; the graph has N*N lattice nodes
	Discretization int `yaml:"discretization" json:"discretization"`
	// ObstaclePenalty multiplies the length of segments touching an obstacle
	ObstaclePenalty float64 `yaml:"obstacle_penalty" json:"obstaclePenalty"`
	// AreaPenalty multiplies the length of segments leaving the area
	AreaPenalty float64 `yaml:"area_penalty" json:"areaPenalty"`
	// MaxWaypoints is the longest route returned before falling back to the
	// direct path
	MaxWaypoints int `yaml:"max_waypoints" json:"maxWaypoints"`
	// PenalizedHeuristic estimates the remaining cost with the penalized
	// segment cost to the goal instead of plain distance. It expands fewer
	// nodes in open space but overestimates whenever the straight line to
	// the goal is blocked, so the route found may cross an obstacle that a
	// longer detour would have avoided.
	PenalizedHeuristic bool `yaml:"penalized_heuristic" json:"penalizedHeuristic"`
}

// DefaultConfig returns the stock grid planner settings
func DefaultConfig() Config {
	return Config{
		Discretization:  DefaultDiscretization,
		ObstaclePenalty: DefaultObstaclePenalty,
		AreaPenalty:     DefaultAreaPenalty,
		MaxWaypoints:    DefaultMaxWaypoints,
	}
}

// Validate rejects settings the planner cannot run with
func (c Config) Validate() error {
	if c.Discretization < 1 {
		return fmt.Errorf("discretization must be positive, got %d", c.Discretization)
	}
	if c.MaxWaypoints < 2 {
		return fmt.Errorf("max waypoints must be at least 2, got %d", c.MaxWaypoints)
	}
	if c.ObstaclePenalty < 1 || c.AreaPenalty < 1 {
		return fmt.Errorf("penalties must be at least 1, got %g and %g", c.ObstaclePenalty, c.AreaPenalty)
	}
	return nil
}

// GridPlanner searches a lattice laid over the operating area. Every call
// builds its own graph, so one GridPlanner can serve concurrent callers.
type GridPlanner struct {
	Config Config
	// Logger receives fallback notices; nil keeps the planner quiet
	Logger *log.Logger
}

// NewGridPlanner creates a grid planner
func NewGridPlanner(cfg Config) *GridPlanner {
	return &GridPlanner{Config: cfg}
}

// Plan implements Planner
func (p *GridPlanner) Plan(s *scenario.Scenario) Path {
	return p.PlanResult(s).Path
}

// PlanResult searches the grid and reports how the path was obtained. A
// failed search, or a route longer than MaxWaypoints, yields exactly
// [start, end] even if that line crosses an obstacle.
func (p *GridPlanner) PlanResult(s *scenario.Scenario) Result {
	cfg := p.Config
	costs := NewCostModel(s, cfg.ObstaclePenalty, cfg.AreaPenalty)

	n := cfg.Discretization
	graph := BuildGrid(s.Area(), n)
	startID, goalID := graph.linkEndpoints(s.Start().Point(), s.End().Point(), LinkThreshold(s.Area(), n))

	result := search(graph, startID, goalID, costs, cfg.PenalizedHeuristic)
	return applyFallback(s, graph, result, costs, cfg.MaxWaypoints, p.Logger)
}

// search runs A* with the cost model scoring edges
func search(graph *Graph, startID, goalID int, costs *CostModel, penalized bool) searchResult {
	goal := graph.Nodes[goalID]
	edgeCost := func(from, to int) float64 {
		return costs.SegmentCost(graph.Nodes[from], graph.Nodes[to])
	}
	heuristic := func(id int) float64 {
		if penalized {
			return costs.SegmentCost(graph.Nodes[id], goal)
		}
		return graph.Nodes[id].Distance(goal)
	}
	return aStar(graph, startID, goalID, edgeCost, heuristic)
}

// applyFallback turns a search result into a path, replacing failed or
// overlong routes with the direct path. Shared by the graph strategies.
func applyFallback(s *scenario.Scenario, graph *Graph, res searchResult, costs *CostModel, maxWaypoints int, logger *log.Logger) Result {
	if maxWaypoints <= 0 {
		maxWaypoints = DefaultMaxWaypoints
	}

	direct := func(outcome Outcome) Result {
		path := Direct(s)
		return Result{Path: path, Outcome: outcome, Cost: costs.PathCost(path), Expanded: res.expanded}
	}

	if !res.found {
		if logger != nil {
			logger.Printf("⚠️  No route after expanding %d nodes, using direct path\n", res.expanded)
		}
		return direct(OutcomeSearchExhausted)
	}
	if len(res.path) > maxWaypoints {
		if logger != nil {
			logger.Printf("⚠️  Route has %d waypoints (max %d), using direct path\n", len(res.path), maxWaypoints)
		}
		return direct(OutcomePathTooComplex)
	}

	points := make([]geometry.Point, len(res.path))
	for i, id := range res.path {
		points[i] = graph.Nodes[id]
	}
	path := fromPoints(s, points)
	return Result{Path: path, Outcome: OutcomeRoute, Cost: res.cost, Expanded: res.expanded}
}
