package planner

import (
	"log"
	"math"

	"dubins-planner/geometry"
	"dubins-planner/scenario"
)

// maxVisibilityNodes bounds the O(n²) edge build
const maxVisibilityNodes = 1000

// VisibilityPlanner searches a visibility graph whose nodes are the start,
// the end and every obstacle vertex pushed Clearance away from its polygon's
// centroid. Two nodes are linked when the segment between them touches no
// obstacle and both lie inside the operating area.
type VisibilityPlanner struct {
	// Clearance offsets obstacle vertices so edges along a polygon do not
	// touch it. Zero uses 0.1% of the area diagonal.
	Clearance    float64
	MaxWaypoints int
	Logger       *log.Logger
}

// Plan implements Planner
func (p *VisibilityPlanner) Plan(s *scenario.Scenario) Path {
	return p.PlanResult(s).Path
}

// PlanResult builds the visibility graph and searches it. The fallback
// policy matches the grid planner.
func (p *VisibilityPlanner) PlanResult(s *scenario.Scenario) Result {
	costs := NewCostModel(s, DefaultObstaclePenalty, DefaultAreaPenalty)

	clearance := p.Clearance
	if clearance <= 0 {
		clearance = s.Area().Diagonal() * 1e-3
	}

	graph, startID, goalID := BuildVisibilityGraph(s, clearance)
	if p.Logger != nil {
		p.Logger.Printf("   Visibility graph: %d nodes, %d edges\n", len(graph.Nodes), graph.EdgeCount()/2)
	}

	result := aStar(graph, startID, goalID,
		func(from, to int) float64 {
			return graph.Nodes[from].Distance(graph.Nodes[to])
		},
		func(id int) float64 {
			return graph.Nodes[id].Distance(graph.Nodes[goalID])
		},
	)
	return applyFallback(s, graph, result, costs, p.MaxWaypoints, p.Logger)
}

// BuildVisibilityGraph constructs the graph and returns it with the start
// and goal ids. Above maxVisibilityNodes only start and goal are kept,
// unlinked, so the search falls back.
func BuildVisibilityGraph(s *scenario.Scenario, clearance float64) (*Graph, int, int) {
	graph := &Graph{}
	startID := graph.AddNode(s.Start().Point())
	goalID := graph.AddNode(s.End().Point())

	seen := map[geometry.Point]bool{
		graph.Nodes[startID]: true,
		graph.Nodes[goalID]:  true,
	}
	for _, o := range s.Obstacles() {
		for _, v := range inflate(o.Polygon, clearance) {
			if !seen[v] {
				seen[v] = true
				graph.AddNode(v)
			}
		}
	}

	if len(graph.Nodes) > maxVisibilityNodes {
		log.Printf("❌ Too many visibility nodes (%d), skipping edge build\n", len(graph.Nodes))
		return &Graph{Nodes: graph.Nodes[:2], Edges: make([][]int, 2)}, startID, goalID
	}

	area := s.Area()
	for i := range graph.Nodes {
		for j := i + 1; j < len(graph.Nodes); j++ {
			a, b := graph.Nodes[i], graph.Nodes[j]
			if !area.Contains(a) || !area.Contains(b) {
				continue
			}
			if s.Blocked(geometry.LineSegment{P1: a, P2: b}) {
				continue
			}
			graph.Link(i, j)
			graph.Link(j, i)
		}
	}

	return graph, startID, goalID
}

// inflate moves each vertex away from the vertex centroid by clearance
func inflate(poly geometry.Polygon, clearance float64) []geometry.Point {
	n := len(poly.Vertices)
	if n == 0 {
		return nil
	}

	var cx, cy float64
	for _, v := range poly.Vertices {
		cx += v.X
		cy += v.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	out := make([]geometry.Point, n)
	for i, v := range poly.Vertices {
		dx, dy := v.X-cx, v.Y-cy
		d := math.Hypot(dx, dy)
		if d == 0 {
			out[i] = v
			continue
		}
		out[i] = geometry.Point{X: v.X + dx/d*clearance, Y: v.Y + dy/d*clearance}
	}
	return out
}
