package geometry

import "math"

// Point is a position in the plane
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance is the Euclidean distance to q
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Waypoint is a point plus a heading in radians. Equality is exact (==).
type Waypoint struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Orientation float64 `json:"orientation"`
}

// Point drops the heading
func (w Waypoint) Point() Point {
	return Point{X: w.X, Y: w.Y}
}

// NormalizeAngle maps an angle into (-π, π]
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	} else if theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// Heading returns the direction from a to b, or 0 when they coincide
func Heading(a, b Point) float64 {
	if a == b {
		return 0
	}
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// LineSegment is the closed segment from P1 to P2
type LineSegment struct {
	P1, P2 Point
}

// Length of the segment
func (s LineSegment) Length() float64 {
	return s.P1.Distance(s.P2)
}

// SegmentsIntersect reports whether a and b share at least one point.
// Touching endpoints and collinear overlap count.
func SegmentsIntersect(a, b LineSegment) bool {
	oa1 := orientation(b.P1, b.P2, a.P1)
	oa2 := orientation(b.P1, b.P2, a.P2)
	ob1 := orientation(a.P1, a.P2, b.P1)
	ob2 := orientation(a.P1, a.P2, b.P2)

	// proper crossing: each segment straddles the other's line
	if oa1*oa2 < 0 && ob1*ob2 < 0 {
		return true
	}

	switch {
	case oa1 == 0 && withinBox(b, a.P1):
		return true
	case oa2 == 0 && withinBox(b, a.P2):
		return true
	case ob1 == 0 && withinBox(a, b.P1):
		return true
	case ob2 == 0 && withinBox(a, b.P2):
		return true
	}
	return false
}

// orientation is the sign of the turn o -> p -> q: +1 clockwise, -1
// counter-clockwise, 0 collinear
func orientation(o, p, q Point) int {
	cross := (q.X-o.X)*(p.Y-o.Y) - (p.X-o.X)*(q.Y-o.Y)
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}

// withinBox checks q against the bounding box of s
func withinBox(s LineSegment, q Point) bool {
	return math.Min(s.P1.X, s.P2.X) <= q.X && q.X <= math.Max(s.P1.X, s.P2.X) &&
		math.Min(s.P1.Y, s.P2.Y) <= q.Y && q.Y <= math.Max(s.P1.Y, s.P2.Y)
}
