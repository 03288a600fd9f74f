package planner

import (
	"math"

	"dubins-planner/geometry"
	"dubins-planner/scenario"
)

const (
	DefaultObstaclePenalty = 100.0
	DefaultAreaPenalty     = 100.0
)

// CostModel scores straight segments against a scenario
type CostModel struct {
	scenario        *scenario.Scenario
	obstaclePenalty float64
	areaPenalty     float64
}

// NewCostModel builds a cost model. Non-positive penalties fall back to the
// defaults.
func NewCostModel(s *scenario.Scenario, obstaclePenalty, areaPenalty float64) *CostModel {
	if obstaclePenalty <= 0 {
		obstaclePenalty = DefaultObstaclePenalty
	}
	if areaPenalty <= 0 {
		areaPenalty = DefaultAreaPenalty
	}
	return &CostModel{
		scenario:        s,
		obstaclePenalty: obstaclePenalty,
		areaPenalty:     areaPenalty,
	}
}

// SegmentCost is the Euclidean length of p-q, multiplied by the obstacle
// penalty when the segment touches an obstacle and by the area penalty when
// either endpoint lies outside the operating area. Both penalties compound.
func (m *CostModel) SegmentCost(p, q geometry.Point) float64 {
	cost := p.Distance(q)
	if m.scenario.Blocked(geometry.LineSegment{P1: p, P2: q}) {
		cost *= m.obstaclePenalty
	}
	area := m.scenario.Area()
	if !area.Contains(p) || !area.Contains(q) {
		cost *= m.areaPenalty
	}
	return cost
}

// PathCost sums the segment costs along a path
func (m *CostModel) PathCost(path Path) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += m.SegmentCost(path[i].Point(), path[i+1].Point())
	}
	return total
}

// PathLength is the plain Euclidean length of a path
func PathLength(path Path) float64 {
	total := 0.0
	for _, seg := range path.Segments() {
		total += seg.Length()
	}
	return total
}

// TravelTime estimates how long the path takes at the given speed. Each
// segment is driven at speed times the smallest reduction factor among the
// speed regions it touches. Turning is ignored. A non-positive speed never
// arrives.
func TravelTime(s *scenario.Scenario, path Path, speed float64) float64 {
	if speed <= 0 {
		return math.Inf(1)
	}
	total := 0.0
	for _, seg := range path.Segments() {
		total += seg.Length() / (speed * s.SpeedFactor(seg))
	}
	return total
}
