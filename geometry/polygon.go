package geometry

import "math"

// Polygon is an ordered list of vertices. The closing edge from the last
// vertex back to the first is implied. Winding is not validated.
type Polygon struct {
	Vertices []Point `json:"vertices"`
}

// NewPolygon copies the given vertices into a polygon
func NewPolygon(vertices ...Point) Polygon {
	v := make([]Point, len(vertices))
	copy(v, vertices)
	return Polygon{Vertices: v}
}

// Edges returns the polygon edges including the closing edge
func (p Polygon) Edges() []LineSegment {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	if n == 2 {
		return []LineSegment{{P1: p.Vertices[0], P2: p.Vertices[1]}}
	}
	edges := make([]LineSegment, n)
	for i := 0; i < n; i++ {
		edges[i] = LineSegment{P1: p.Vertices[i], P2: p.Vertices[(i+1)%n]}
	}
	return edges
}

// Contains reports whether point lies inside the polygon using the even-odd
// rule with a ray cast toward -x. An edge counts when it is not horizontal,
// point.Y lies in [minY, maxY) of the edge and the crossing lies strictly left
// of point. Points exactly on the boundary may report either result; callers
// must not depend on it.
//
// Polygons with fewer than 3 vertices contain nothing.
func (p Polygon) Contains(point Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}

	crossings := 0
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]

		if a.Y == b.Y {
			continue
		}
		if point.Y < math.Min(a.Y, b.Y) || point.Y >= math.Max(a.Y, b.Y) {
			continue
		}
		x := (point.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) + a.X
		if x < point.X {
			crossings++
		}
	}

	return crossings%2 == 1
}

// Intersects checks whether a segment touches the polygon: either endpoint is
// inside, or the segment crosses or touches an edge. A zero-length segment
// reduces to Contains.
func (p Polygon) Intersects(seg LineSegment) bool {
	if seg.P1 == seg.P2 {
		return p.Contains(seg.P1)
	}
	if p.Contains(seg.P1) || p.Contains(seg.P2) {
		return true
	}
	for _, edge := range p.Edges() {
		if SegmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}

// SignedArea is the shoelace area, positive for counter-clockwise winding
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area is the absolute shoelace area
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// BBox represents an axis-aligned bounding box
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains checks whether a point lies in the closed box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// ContainsBox checks whether box other lies within b
func (b BBox) ContainsBox(other BBox) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// Bounds calculates the bounding box of a polygon
func (p Polygon) Bounds() BBox {
	if len(p.Vertices) == 0 {
		return BBox{}
	}

	bbox := BBox{
		MinX: p.Vertices[0].X,
		MinY: p.Vertices[0].Y,
		MaxX: p.Vertices[0].X,
		MaxY: p.Vertices[0].Y,
	}

	for _, v := range p.Vertices[1:] {
		bbox.MinX = math.Min(bbox.MinX, v.X)
		bbox.MinY = math.Min(bbox.MinY, v.Y)
		bbox.MaxX = math.Max(bbox.MaxX, v.X)
		bbox.MaxY = math.Max(bbox.MaxY, v.Y)
	}

	return bbox
}

// SegmentBounds is the bounding box of a segment
func SegmentBounds(seg LineSegment) BBox {
	return BBox{
		MinX: math.Min(seg.P1.X, seg.P2.X),
		MinY: math.Min(seg.P1.Y, seg.P2.Y),
		MaxX: math.Max(seg.P1.X, seg.P2.X),
		MaxY: math.Max(seg.P1.Y, seg.P2.Y),
	}
}
