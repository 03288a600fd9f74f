package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dubins-planner/geometry"
)

func square(x, y, size float64) geometry.Polygon {
	return geometry.NewPolygon(
		geometry.Point{X: x, Y: y},
		geometry.Point{X: x + size, Y: y},
		geometry.Point{X: x + size, Y: y + size},
		geometry.Point{X: x, Y: y + size},
	)
}

var testArea = OperatingArea{SW: geometry.Point{X: 0, Y: 0}, NE: geometry.Point{X: 10, Y: 10}}

func TestNewValidatesArea(t *testing.T) {
	bad := []OperatingArea{
		{SW: geometry.Point{X: 10, Y: 0}, NE: geometry.Point{X: 0, Y: 10}},
		{SW: geometry.Point{X: 0, Y: 0}, NE: geometry.Point{X: 0, Y: 10}},
		{SW: geometry.Point{X: 0, Y: 5}, NE: geometry.Point{X: 10, Y: 5}},
	}
	for _, area := range bad {
		_, err := New(area, geometry.Waypoint{}, geometry.Waypoint{}, nil, nil)
		assert.True(t, errors.Is(err, ErrInvalidArea), "area %+v", area)
	}

	s, err := New(testArea, geometry.Waypoint{X: 1, Y: 1}, geometry.Waypoint{X: 9, Y: 9}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, testArea, s.Area())
	assert.Equal(t, geometry.Waypoint{X: 1, Y: 1}, s.Start())
	assert.Equal(t, geometry.Waypoint{X: 9, Y: 9}, s.End())
}

func TestNewValidatesFactor(t *testing.T) {
	for _, f := range []float64{0, -0.5, 1.5} {
		_, err := New(testArea, geometry.Waypoint{}, geometry.Waypoint{}, nil,
			[]SpeedReductionRegion{{Polygon: square(1, 1, 1), Factor: f}})
		assert.True(t, errors.Is(err, ErrInvalidFactor), "factor %g", f)
	}

	_, err := New(testArea, geometry.Waypoint{}, geometry.Waypoint{}, nil,
		[]SpeedReductionRegion{{Polygon: square(1, 1, 1), Factor: 1}})
	assert.NoError(t, err)
}

func TestScenarioCopiesInputs(t *testing.T) {
	obstacles := []Obstacle{{Polygon: square(2, 2, 1)}}
	s, err := New(testArea, geometry.Waypoint{}, geometry.Waypoint{X: 5, Y: 5}, obstacles, nil)
	require.NoError(t, err)

	obstacles[0].Polygon.Vertices[0] = geometry.Point{X: 100, Y: 100}
	assert.Equal(t, geometry.Point{X: 2, Y: 2}, s.Obstacles()[0].Polygon.Vertices[0])
}

func TestBlockedUsesIndex(t *testing.T) {
	s, err := New(testArea, geometry.Waypoint{}, geometry.Waypoint{}, []Obstacle{
		{Polygon: square(2, 2, 1)},
		{Polygon: square(7, 7, 1)},
	}, nil)
	require.NoError(t, err)

	diag := geometry.LineSegment{P1: geometry.Point{X: 0, Y: 0}, P2: geometry.Point{X: 10, Y: 10}}
	assert.Len(t, s.ObstaclesNear(diag), 2)
	assert.True(t, s.Blocked(diag))

	short := geometry.LineSegment{P1: geometry.Point{X: 0, Y: 0}, P2: geometry.Point{X: 1, Y: 1}}
	assert.Empty(t, s.ObstaclesNear(short))
	assert.False(t, s.Blocked(short))

	// Axis-aligned segments have a flat bounding box
	vertical := geometry.LineSegment{P1: geometry.Point{X: 2.5, Y: 0}, P2: geometry.Point{X: 2.5, Y: 9}}
	assert.True(t, s.Blocked(vertical))
}

func TestObstacleIndexSkipsEmpty(t *testing.T) {
	idx := NewObstacleIndex([]Obstacle{
		{Polygon: square(2, 2, 1)},
		{},
		{Polygon: square(6, 6, 1)},
	})
	assert.Equal(t, 2, idx.Len())

	hits := idx.Query(geometry.BBox{MinX: 5, MinY: 5, MaxX: 10, MaxY: 10})
	require.Len(t, hits, 1)
	assert.Equal(t, square(6, 6, 1), hits[0].Polygon)
}

func TestSpeedFactor(t *testing.T) {
	s, err := New(testArea, geometry.Waypoint{}, geometry.Waypoint{}, nil, []SpeedReductionRegion{
		{Polygon: square(1, 1, 1), Factor: 0.5},
		{Polygon: square(1.2, 1.2, 0.5), Factor: 0.25},
	})
	require.NoError(t, err)

	through := geometry.LineSegment{P1: geometry.Point{X: 0, Y: 1.5}, P2: geometry.Point{X: 3, Y: 1.5}}
	assert.Equal(t, 0.25, s.SpeedFactor(through))

	edge := geometry.LineSegment{P1: geometry.Point{X: 0, Y: 1.9}, P2: geometry.Point{X: 3, Y: 1.9}}
	assert.Equal(t, 0.5, s.SpeedFactor(edge))

	clear := geometry.LineSegment{P1: geometry.Point{X: 5, Y: 5}, P2: geometry.Point{X: 6, Y: 6}}
	assert.Equal(t, 1.0, s.SpeedFactor(clear))
}

func TestOperatingArea(t *testing.T) {
	assert.True(t, testArea.Contains(geometry.Point{X: 0, Y: 10}))
	assert.False(t, testArea.Contains(geometry.Point{X: -0.1, Y: 5}))
	assert.Equal(t, 10.0, testArea.Width())
	assert.Equal(t, 10.0, testArea.Height())
	assert.InDelta(t, 14.142135, testArea.Diagonal(), 1e-6)
}

func TestNormalize(t *testing.T) {
	obstacles := []Obstacle{
		{Polygon: square(0, 0, 4), Cost: 1},
		{Polygon: square(1, 1, 1), Cost: 2},
		{Polygon: square(6, 6, 1), Cost: 3},
	}

	out := Normalize(obstacles, Options{DropContained: true})
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Cost)
	assert.Equal(t, 3.0, out[1].Cost)

	same := Normalize(obstacles, Options{})
	assert.Equal(t, obstacles, same)
}

const fixture = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"kind": "area"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
    {"type": "Feature", "properties": {"kind": "start", "orientation": 1.5},
     "geometry": {"type": "Point", "coordinates": [1,5]}},
    {"type": "Feature", "properties": {"kind": "end"},
     "geometry": {"type": "Point", "coordinates": [9,5]}},
    {"type": "Feature", "properties": {"kind": "obstacle", "cost": 4},
     "geometry": {"type": "Polygon", "coordinates": [[[4,3],[6,3],[6,7],[4,7],[4,3]]]}},
    {"type": "Feature", "properties": {"kind": "obstacle"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[1,8],[2,8],[2,9],[1,9],[1,8]]],
       [[[4.5,4],[5,4],[5,5],[4.5,5],[4.5,4]]]
     ]}},
    {"type": "Feature", "properties": {"kind": "speed_reduction", "factor": 0.5},
     "geometry": {"type": "Polygon", "coordinates": [[[7,0],[8,0],[8,10],[7,10],[7,0]]]}},
    {"type": "Feature", "properties": {"kind": "label"},
     "geometry": {"type": "Point", "coordinates": [3,3]}}
  ]
}`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(fixture), Options{})
	require.NoError(t, err)

	assert.Equal(t, testArea, s.Area())
	assert.Equal(t, geometry.Waypoint{X: 1, Y: 5, Orientation: 1.5}, s.Start())
	assert.Equal(t, geometry.Waypoint{X: 9, Y: 5}, s.End())

	obstacles := s.Obstacles()
	require.Len(t, obstacles, 3)
	assert.Equal(t, 4.0, obstacles[0].Cost)
	assert.Len(t, obstacles[0].Polygon.Vertices, 4, "closing vertex dropped")

	regions := s.SpeedRegions()
	require.Len(t, regions, 1)
	assert.Equal(t, 0.5, regions[0].Factor)
}

func TestLoadDropContained(t *testing.T) {
	s, err := Load(strings.NewReader(fixture), Options{DropContained: true})
	require.NoError(t, err)
	assert.Len(t, s.Obstacles(), 2)
}

func TestLoadMissingFeatures(t *testing.T) {
	_, err := Load(strings.NewReader(`{"type":"FeatureCollection","features":[]}`), Options{})
	assert.True(t, errors.Is(err, ErrMissingFeature))

	_, err = Load(strings.NewReader(`not json`), Options{})
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does-not-exist.geojson", Options{})
	assert.Error(t, err)
}
