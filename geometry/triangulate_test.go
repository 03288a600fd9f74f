package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orbArea(p Polygon) float64 {
	ring := make(orb.Ring, 0, len(p.Vertices)+1)
	for _, v := range p.Vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	ring = append(ring, ring[0])
	area := planar.Area(orb.Polygon{ring})
	if area < 0 {
		return -area
	}
	return area
}

func totalArea(triangles []Triangle) float64 {
	sum := 0.0
	for _, tri := range triangles {
		sum += tri.Area()
	}
	return sum
}

// centroid of each triangle must not sit inside any other triangle
func assertNoOverlap(t *testing.T, triangles []Triangle) {
	t.Helper()
	for i, a := range triangles {
		c := Point{
			X: (a[0].X + a[1].X + a[2].X) / 3,
			Y: (a[0].Y + a[1].Y + a[2].Y) / 3,
		}
		for j, b := range triangles {
			if i == j {
				continue
			}
			assert.False(t, b.Contains(c), "triangle %d overlaps triangle %d", i, j)
		}
	}
}

func TestTriangulateSquare(t *testing.T) {
	square := unitSquare()

	triangles := Triangulate(square)
	require.Len(t, triangles, 2)
	assert.InDelta(t, orbArea(square), totalArea(triangles), 1e-9)
	assertNoOverlap(t, triangles)
}

func TestTriangulateBothWindings(t *testing.T) {
	ccw := unitSquare()
	cw := NewPolygon(Point{2, 3}, Point{3, 3}, Point{3, 2}, Point{2, 2})

	a := Triangulate(ccw)
	b := Triangulate(cw)
	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.InDelta(t, totalArea(a), totalArea(b), 1e-12)

	// Every emitted triangle follows the clockwise ear convention
	for _, tri := range append(a, b...) {
		assert.Less(t, SignedArea(tri[0], tri[1], tri[2]), 0.0)
	}
}

func TestTriangulateConcave(t *testing.T) {
	l := NewPolygon(Point{0, 0}, Point{2, 0}, Point{2, 1}, Point{1, 1}, Point{1, 2}, Point{0, 2})

	triangles := Triangulate(l)
	require.Len(t, triangles, 4)
	assert.InDelta(t, 3.0, totalArea(triangles), 1e-9)
	assert.InDelta(t, orbArea(l), totalArea(triangles), 1e-9)
	assertNoOverlap(t, triangles)

	// The notch must stay uncovered
	for _, tri := range triangles {
		assert.False(t, tri.Contains(Point{1.5, 1.5}))
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	assert.Empty(t, Triangulate(Polygon{}))
	assert.Empty(t, Triangulate(NewPolygon(Point{0, 0}, Point{1, 1})))

	tri := NewPolygon(Point{0, 0}, Point{1, 0}, Point{0, 1})
	assert.Len(t, Triangulate(tri), 1)
}

func TestTriangulateCollinearTerminates(t *testing.T) {
	flat := NewPolygon(Point{0, 0}, Point{1, 0}, Point{2, 0})
	assert.Empty(t, Triangulate(flat))
}

func TestIsConvex(t *testing.T) {
	assert.True(t, IsConvex(unitSquare().Vertices))
	assert.True(t, IsConvex(NewPolygon(Point{2, 3}, Point{3, 3}, Point{3, 2}, Point{2, 2}).Vertices))

	l := []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	assert.False(t, IsConvex(l))

	assert.False(t, IsConvex([]Point{{0, 0}, {1, 1}}))
	// Collinear midpoints are ignored
	assert.True(t, IsConvex([]Point{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}}))
}
