package geometry

import "math"

// Triangle is three vertices in the order they were clipped
type Triangle [3]Point

// Area of the triangle
func (t Triangle) Area() float64 {
	return math.Abs(SignedArea(t[0], t[1], t[2])) / 2
}

// Contains reports whether p lies inside or on the triangle
func (t Triangle) Contains(p Point) bool {
	return pointInTriangle(p, t[0], t[1], t[2])
}

// SignedArea is the cross product (b-a)x(c-a), twice the signed triangle
// area. Negative means a, b, c turn clockwise.
func SignedArea(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// IsConvex reports whether every non-degenerate corner turns the same way.
// Collinear triples are ignored. Fewer than 3 points is not convex.
func IsConvex(points []Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		cross := SignedArea(points[i], points[(i+1)%n], points[(i+2)%n])
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// pointInTriangle uses the sub-triangle sign agreement test, boundary inclusive
func pointInTriangle(p, a, b, c Point) bool {
	alpha := SignedArea(p, b, c)
	beta := SignedArea(p, c, a)
	gamma := SignedArea(p, a, b)
	return (alpha >= 0 && beta >= 0 && gamma >= 0) || (alpha <= 0 && beta <= 0 && gamma <= 0)
}

// isEar checks that corner a-b-c turns clockwise and that no other live
// vertex falls inside it
func isEar(prev, cur, next int, vertices []Point, live []bool) bool {
	a, b, c := vertices[prev], vertices[cur], vertices[next]
	if SignedArea(a, b, c) >= 0 {
		return false
	}
	for i, p := range vertices {
		if !live[i] || i == prev || i == cur || i == next {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// Triangulate splits a simple polygon into triangles by ear clipping.
//
// The ear test expects clockwise winding; counter-clockwise input is reversed
// on a working copy first, so either winding works. Fewer than 3 vertices
// yields no triangles. Self-intersecting input is not detected and produces
// meaningless triangles. Clipping stops early when a full lap over the
// remaining vertices finds no ear, which happens for collinear runs.
func Triangulate(polygon Polygon) []Triangle {
	n := len(polygon.Vertices)
	if n < 3 {
		return []Triangle{}
	}

	vertices := make([]Point, n)
	copy(vertices, polygon.Vertices)
	if polygon.SignedArea() > 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			vertices[i], vertices[j] = vertices[j], vertices[i]
		}
	}

	next := make([]int, n)
	prev := make([]int, n)
	live := make([]bool, n)
	for i := 0; i < n; i++ {
		next[i] = (i + 1) % n
		prev[i] = (i - 1 + n) % n
		live[i] = true
	}

	triangles := make([]Triangle, 0, n-2)
	remaining := n
	cur := 0
	misses := 0
	for remaining >= 3 && misses < remaining {
		p, q := prev[cur], next[cur]
		if !isEar(p, cur, q, vertices, live) {
			cur = q
			misses++
			continue
		}

		triangles = append(triangles, Triangle{vertices[p], vertices[cur], vertices[q]})
		live[cur] = false
		next[p] = q
		prev[q] = p
		remaining--
		misses = 0
		cur = q
	}

	return triangles
}
