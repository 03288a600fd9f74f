package planner

import (
	"dubins-planner/geometry"
	"dubins-planner/scenario"
)

// StraightPlanner ignores obstacles and spaces Interior waypoints evenly on
// the line from start to end
type StraightPlanner struct {
	Interior int
}

// Plan implements Planner
func (p StraightPlanner) Plan(s *scenario.Scenario) Path {
	start, end := s.Start().Point(), s.End().Point()

	points := make([]geometry.Point, 0, p.Interior+2)
	points = append(points, start)
	for i := 0; i < p.Interior; i++ {
		fraction := float64(i+1) / float64(p.Interior+1)
		points = append(points, geometry.Point{
			X: start.X + fraction*(end.X-start.X),
			Y: start.Y + fraction*(end.Y-start.Y),
		})
	}
	points = append(points, end)

	return fromPoints(s, points)
}
