package scenario

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"dubins-planner/geometry"
)

// Feature kinds recognised in the "kind" property of a scenario file
const (
	KindArea           = "area"
	KindObstacle       = "obstacle"
	KindSpeedReduction = "speed_reduction"
	KindStart          = "start"
	KindEnd            = "end"
)

var ErrMissingFeature = errors.New("scenario file is missing a required feature")

// Options tune the obstacle set before the Scenario is built
type Options struct {
	// SimplifyEpsilon enables Douglas-Peucker simplification of obstacle rings
	SimplifyEpsilon float64 `yaml:"simplify_epsilon"`
	// DropContained discards obstacles lying entirely inside another obstacle
	DropContained bool `yaml:"drop_contained"`
}

// Normalize applies the options to an obstacle list
func Normalize(obstacles []Obstacle, opts Options) []Obstacle {
	out := make([]Obstacle, len(obstacles))
	copy(out, obstacles)

	if opts.SimplifyEpsilon > 0 {
		for i := range out {
			out[i].Polygon = geometry.Simplify(out[i].Polygon, opts.SimplifyEpsilon)
		}
	}
	if opts.DropContained {
		before := len(out)
		out = geometry.DropContained(out, func(o Obstacle) geometry.Polygon { return o.Polygon })
		log.Printf("   Obstacles after removing contained: %d (removed %d)\n", len(out), before-len(out))
	}
	return out
}

// LoadFile reads a GeoJSON scenario from disk
func LoadFile(filename string, opts Options) (*Scenario, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()

	return Load(f, opts)
}

// Load parses a GeoJSON FeatureCollection. Each feature carries a "kind"
// property: "area" (polygon, its bounding box becomes the operating area),
// "obstacle" (polygon or multipolygon, optional "cost"), "speed_reduction"
// (polygon, "factor"), "start" and "end" (points, optional "orientation").
// Only the outer ring of a polygon is used.
func Load(r io.Reader, opts Options) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	var (
		area       *OperatingArea
		start, end *geometry.Waypoint
		obstacles  []Obstacle
		regions    []SpeedReductionRegion
	)

	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}
		kind := feature.Properties.MustString("kind", "")
		switch kind {
		case KindArea:
			b := feature.Geometry.Bound()
			area = &OperatingArea{
				SW: geometry.Point{X: b.Min.X(), Y: b.Min.Y()},
				NE: geometry.Point{X: b.Max.X(), Y: b.Max.Y()},
			}

		case KindStart, KindEnd:
			pt, ok := feature.Geometry.(orb.Point)
			if !ok {
				return nil, fmt.Errorf("feature %d: %s must be a Point, got %s", i, kind, feature.Geometry.GeoJSONType())
			}
			wp := geometry.Waypoint{
				X:           pt.X(),
				Y:           pt.Y(),
				Orientation: geometry.NormalizeAngle(feature.Properties.MustFloat64("orientation", 0)),
			}
			if kind == KindStart {
				start = &wp
			} else {
				end = &wp
			}

		case KindObstacle:
			cost := feature.Properties.MustFloat64("cost", 0)
			for _, poly := range toPolygons(feature.Geometry) {
				obstacles = append(obstacles, Obstacle{Polygon: poly, Cost: cost})
			}

		case KindSpeedReduction:
			factor := feature.Properties.MustFloat64("factor", 1)
			for _, poly := range toPolygons(feature.Geometry) {
				regions = append(regions, SpeedReductionRegion{Polygon: poly, Factor: factor})
			}

		default:
			log.Printf("⚠️  Skipping feature %d with unknown kind %q\n", i, kind)
		}
	}

	switch {
	case area == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingFeature, KindArea)
	case start == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingFeature, KindStart)
	case end == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingFeature, KindEnd)
	}

	obstacles = Normalize(obstacles, opts)

	return New(*area, *start, *end, obstacles, regions)
}

// toPolygons converts GeoJSON geometry to our Polygon format
func toPolygons(g orb.Geometry) []geometry.Polygon {
	var polygons []geometry.Polygon

	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) > 0 {
			polygons = append(polygons, fromRing(geom[0]))
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			if len(poly) > 0 {
				polygons = append(polygons, fromRing(poly[0]))
			}
		}
	case orb.Ring:
		polygons = append(polygons, fromRing(geom))
	default:
		log.Printf("⚠️  Ignoring unsupported geometry %s\n", g.GeoJSONType())
	}

	return polygons
}

// fromRing drops the repeated closing vertex GeoJSON rings carry
func fromRing(ring orb.Ring) geometry.Polygon {
	n := len(ring)
	if n > 1 && ring[0].Equal(ring[n-1]) {
		n--
	}
	vertices := make([]geometry.Point, 0, n)
	for _, pt := range ring[:n] {
		vertices = append(vertices, geometry.Point{X: pt.X(), Y: pt.Y()})
	}
	return geometry.Polygon{Vertices: vertices}
}
