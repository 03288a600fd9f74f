package planner

import (
	"container/heap"
)

// searchNode is the per-search scratch for one graph node
type searchNode struct {
	id     int
	g      float64 // cost from start
	h      float64 // heuristic to goal
	f      float64 // g + h
	parent *searchNode
	index  int    // position in the heap
	seq    uint64 // insertion order, breaks f ties first-in first-out
}

// priorityQueue implements heap.Interface ordered by f then seq
type priorityQueue []*searchNode

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	n := len(*pq)
	node := x.(*searchNode)
	node.index = n
	*pq = append(*pq, node)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]
	return node
}

// searchResult is the outcome of one A* run
type searchResult struct {
	path     []int
	cost     float64
	expanded int
	found    bool
}

// aStar runs best-first search from start to goal. edgeCost scores an edge
// by node ids; heuristic estimates the remaining cost from a node and is
// evaluated once per node. All scratch lives in maps local to this call.
func aStar(g *Graph, start, goal int, edgeCost func(from, to int) float64, heuristic func(id int) float64) searchResult {
	if start < 0 || goal < 0 || start >= len(g.Nodes) || goal >= len(g.Nodes) {
		return searchResult{}
	}

	var seq uint64
	open := &priorityQueue{}
	heap.Init(open)

	startNode := &searchNode{id: start, h: heuristic(start), seq: seq}
	startNode.f = startNode.h
	heap.Push(open, startNode)

	frontier := map[int]*searchNode{start: startNode}
	closed := make(map[int]bool)
	expanded := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		delete(frontier, current.id)

		if current.id == goal {
			var path []int
			for node := current; node != nil; node = node.parent {
				path = append(path, node.id)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return searchResult{path: path, cost: current.g, expanded: expanded, found: true}
		}

		closed[current.id] = true
		expanded++

		for _, next := range g.Edges[current.id] {
			if closed[next] {
				continue
			}

			cost := current.g + edgeCost(current.id, next)

			neighbor, exists := frontier[next]
			if !exists {
				seq++
				neighbor = &searchNode{
					id:     next,
					g:      cost,
					h:      heuristic(next),
					parent: current,
					seq:    seq,
				}
				neighbor.f = neighbor.g + neighbor.h
				heap.Push(open, neighbor)
				frontier[next] = neighbor
			} else if cost < neighbor.g {
				neighbor.g = cost
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = current
				heap.Fix(open, neighbor.index)
			}
		}
	}

	return searchResult{expanded: expanded}
}
