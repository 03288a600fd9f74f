package geometry

import (
	"math"
)

// Simplify reduces polygon complexity using the Douglas-Peucker algorithm.
// The ring is treated as closed: it is split at its first vertex and at the
// vertex farthest from it so that both halves keep their anchors. Results
// with fewer than 3 vertices fall back to the input.
func Simplify(polygon Polygon, epsilon float64) Polygon {
	n := len(polygon.Vertices)
	if n <= 3 || epsilon <= 0 {
		return polygon
	}

	vertices := polygon.Vertices
	const closeThreshold = 1e-9
	if vertices[0].Distance(vertices[n-1]) < closeThreshold {
		vertices = vertices[:n-1]
		n--
	}

	far := 0
	farDist := 0.0
	for i := 1; i < n; i++ {
		if d := vertices[0].Distance(vertices[i]); d > farDist {
			far = i
			farDist = d
		}
	}
	if far == 0 {
		return polygon
	}

	closed := append(append([]Point{}, vertices...), vertices[0])
	left := douglasPeucker(closed[:far+1], epsilon)
	right := douglasPeucker(closed[far:], epsilon)

	simplified := make([]Point, 0, len(left)+len(right))
	simplified = append(simplified, left[:len(left)-1]...)
	simplified = append(simplified, right[:len(right)-1]...)

	if len(simplified) < 3 {
		return polygon
	}
	return Polygon{Vertices: simplified}
}

// douglasPeucker keeps both endpoints of the chain and every vertex farther
// than epsilon from the chord of the span it splits
func douglasPeucker(points []Point, epsilon float64) []Point {
	n := len(points)
	if n <= 2 {
		return points
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		sp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		split, dmax := -1, epsilon
		for i := sp.lo + 1; i < sp.hi; i++ {
			if d := chordDistance(points[i], points[sp.lo], points[sp.hi]); d > dmax {
				split, dmax = i, d
			}
		}
		if split < 0 {
			continue
		}
		keep[split] = true
		stack = append(stack, span{sp.lo, split}, span{split, sp.hi})
	}

	out := make([]Point, 0, n)
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// chordDistance is the distance from p to the line through a and b, or to a
// when a and b coincide
func chordDistance(p, a, b Point) float64 {
	length := a.Distance(b)
	if length == 0 {
		return p.Distance(a)
	}
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	return math.Abs(cross) / length
}

// DropContained removes items whose polygon lies entirely inside the polygon
// of another item. Order of the survivors is preserved.
func DropContained[T any](items []T, polygon func(T) Polygon) []T {
	if len(items) <= 1 {
		return items
	}

	contained := make([]bool, len(items))
	for i := range items {
		if contained[i] {
			continue
		}
		for j := range items {
			if i == j || contained[j] {
				continue
			}
			if ContainedIn(polygon(items[i]), polygon(items[j])) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]T, 0, len(items))
	for i, item := range items {
		if !contained[i] {
			result = append(result, item)
		}
	}
	return result
}

// ContainedIn checks if polygon a is fully contained within polygon b
func ContainedIn(a, b Polygon) bool {
	if len(a.Vertices) == 0 || len(b.Vertices) < 3 {
		return false
	}

	// Quick bounding box check first
	if !b.Bounds().ContainsBox(a.Bounds()) {
		return false
	}

	for _, vertex := range a.Vertices {
		if !b.Contains(vertex) {
			return false
		}
	}
	return true
}
