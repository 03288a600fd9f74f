package planner

import (
	"dubins-planner/geometry"
	"dubins-planner/scenario"
)

// Graph holds node positions and directed adjacency by node id. Nodes carry
// no search state; a search keeps its own scratch keyed by id.
type Graph struct {
	Nodes []geometry.Point
	Edges [][]int
}

// AddNode appends a node and returns its id
func (g *Graph) AddNode(p geometry.Point) int {
	g.Nodes = append(g.Nodes, p)
	g.Edges = append(g.Edges, nil)
	return len(g.Nodes) - 1
}

// Link adds a directed edge
func (g *Graph) Link(from, to int) {
	g.Edges[from] = append(g.Edges[from], to)
}

// EdgeCount is the number of directed edges
func (g *Graph) EdgeCount() int {
	n := 0
	for _, e := range g.Edges {
		n += len(e)
	}
	return n
}

// gridID maps grid indices to a node id
func gridID(n, i, j int) int {
	return i*n + j
}

// BuildGrid lays an n by n lattice over the area, node (i, j) sitting at
// SW + (i*W/n, j*H/n). Each node links to every other node whose indices
// differ by at most n/4 on both axes. The window lives in index space, not
// in distance, so cells stay square only when the area is.
func BuildGrid(area scenario.OperatingArea, n int) *Graph {
	g := &Graph{}
	if n <= 0 {
		return g
	}

	g.Nodes = make([]geometry.Point, 0, n*n)
	g.Edges = make([][]int, 0, n*n)

	dx := area.Width() / float64(n)
	dy := area.Height() / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.AddNode(geometry.Point{
				X: area.SW.X + float64(i)*dx,
				Y: area.SW.Y + float64(j)*dy,
			})
		}
	}

	w := n / 4
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			from := gridID(n, i, j)
			for k := max(0, i-w); k <= min(n-1, i+w); k++ {
				for l := max(0, j-w); l <= min(n-1, j+w); l++ {
					if k == i && l == j {
						continue
					}
					g.Link(from, gridID(n, k, l))
				}
			}
		}
	}

	return g
}

// LinkThreshold is the start/goal connection distance for an n grid:
// (diagonal / n) * (n / 4)
func LinkThreshold(area scenario.OperatingArea, n int) float64 {
	if n <= 0 {
		return 0
	}
	return area.Diagonal() / float64(n) * float64(n/4)
}

// linkEndpoints adds start and goal nodes. The start links out to every
// grid node closer than threshold; every such grid node near the goal links
// in to it. Returns the two new ids.
func (g *Graph) linkEndpoints(start, goal geometry.Point, threshold float64) (int, int) {
	gridSize := len(g.Nodes)
	startID := g.AddNode(start)
	goalID := g.AddNode(goal)

	for id := 0; id < gridSize; id++ {
		p := g.Nodes[id]
		if p.Distance(start) < threshold {
			g.Link(startID, id)
		}
		if p.Distance(goal) < threshold {
			g.Link(id, goalID)
		}
	}
	return startID, goalID
}
