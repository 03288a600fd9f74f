// Package scenario bundles everything a planning request needs: the operating
// area, start and end waypoints, obstacles and speed reduction regions.
// A Scenario is immutable once built.
package scenario

import (
	"errors"
	"fmt"

	"dubins-planner/geometry"
)

var (
	ErrInvalidArea   = errors.New("operating area corners are not southwest/northeast")
	ErrInvalidFactor = errors.New("speed reduction factor outside (0, 1]")
)

// OperatingArea is the axis-aligned rectangle the vehicle should stay in
type OperatingArea struct {
	SW geometry.Point `json:"sw"`
	NE geometry.Point `json:"ne"`
}

// Validate checks SW is strictly south-west of NE
func (a OperatingArea) Validate() error {
	if !(a.SW.X < a.NE.X && a.SW.Y < a.NE.Y) {
		return fmt.Errorf("%w: sw=(%g, %g) ne=(%g, %g)", ErrInvalidArea, a.SW.X, a.SW.Y, a.NE.X, a.NE.Y)
	}
	return nil
}

// Contains checks the closed rectangle
func (a OperatingArea) Contains(p geometry.Point) bool {
	return p.X >= a.SW.X && p.X <= a.NE.X && p.Y >= a.SW.Y && p.Y <= a.NE.Y
}

func (a OperatingArea) Width() float64  { return a.NE.X - a.SW.X }
func (a OperatingArea) Height() float64 { return a.NE.Y - a.SW.Y }

// Diagonal is the SW to NE distance
func (a OperatingArea) Diagonal() float64 {
	return a.SW.Distance(a.NE)
}

// Obstacle is a polygon the vehicle should not cross. Cost is carried along
// for callers; the planner only cares that an obstacle is present.
type Obstacle struct {
	Polygon geometry.Polygon `json:"polygon"`
	Cost    float64          `json:"cost"`
}

// SpeedReductionRegion slows the vehicle to Factor times its speed
type SpeedReductionRegion struct {
	Polygon geometry.Polygon `json:"polygon"`
	Factor  float64          `json:"factor"`
}

// Scenario is one planning problem
type Scenario struct {
	area         OperatingArea
	start        geometry.Waypoint
	end          geometry.Waypoint
	obstacles    []Obstacle
	speedRegions []SpeedReductionRegion
	index        *ObstacleIndex
}

// New validates and copies the inputs into a Scenario
func New(area OperatingArea, start, end geometry.Waypoint, obstacles []Obstacle, speedRegions []SpeedReductionRegion) (*Scenario, error) {
	if err := area.Validate(); err != nil {
		return nil, err
	}
	for i, r := range speedRegions {
		if !(r.Factor > 0 && r.Factor <= 1) {
			return nil, fmt.Errorf("speed region %d: %w: %g", i, ErrInvalidFactor, r.Factor)
		}
	}

	s := &Scenario{
		area:         area,
		start:        start,
		end:          end,
		obstacles:    make([]Obstacle, len(obstacles)),
		speedRegions: make([]SpeedReductionRegion, len(speedRegions)),
	}
	for i, o := range obstacles {
		s.obstacles[i] = Obstacle{Polygon: geometry.NewPolygon(o.Polygon.Vertices...), Cost: o.Cost}
	}
	for i, r := range speedRegions {
		s.speedRegions[i] = SpeedReductionRegion{Polygon: geometry.NewPolygon(r.Polygon.Vertices...), Factor: r.Factor}
	}
	s.index = NewObstacleIndex(s.obstacles)

	return s, nil
}

func (s *Scenario) Area() OperatingArea      { return s.area }
func (s *Scenario) Start() geometry.Waypoint { return s.start }
func (s *Scenario) End() geometry.Waypoint   { return s.end }

// Obstacles returns a copy of the obstacle list
func (s *Scenario) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// SpeedRegions returns a copy of the speed reduction regions
func (s *Scenario) SpeedRegions() []SpeedReductionRegion {
	out := make([]SpeedReductionRegion, len(s.speedRegions))
	copy(out, s.speedRegions)
	return out
}

// ObstaclesNear returns the obstacles whose bounding box overlaps the segment's
func (s *Scenario) ObstaclesNear(seg geometry.LineSegment) []Obstacle {
	return s.index.Query(geometry.SegmentBounds(seg))
}

// Blocked reports whether the segment intersects any obstacle
func (s *Scenario) Blocked(seg geometry.LineSegment) bool {
	for _, o := range s.ObstaclesNear(seg) {
		if o.Polygon.Intersects(seg) {
			return true
		}
	}
	return false
}

// SpeedFactor is the smallest reduction factor among regions the segment
// touches, or 1 when it touches none
func (s *Scenario) SpeedFactor(seg geometry.LineSegment) float64 {
	factor := 1.0
	for _, r := range s.speedRegions {
		if r.Factor < factor && r.Polygon.Intersects(seg) {
			factor = r.Factor
		}
	}
	return factor
}
