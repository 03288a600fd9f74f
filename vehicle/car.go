// Package vehicle integrates the pose of a car that cannot turn tighter than
// a fixed radius.
package vehicle

import (
	"math"

	"dubins-planner/geometry"
)

// Car is the kinematic state of the vehicle. Only Update mutates it.
type Car struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Theta         float64 `json:"theta"`
	MinTurnRadius float64 `json:"minTurnRadius"`
	Speed         float64 `json:"speed"`
}

// NewCar places a car at a waypoint
func NewCar(at geometry.Waypoint, minTurnRadius, speed float64) *Car {
	return &Car{
		X:             at.X,
		Y:             at.Y,
		Theta:         geometry.NormalizeAngle(at.Orientation),
		MinTurnRadius: minTurnRadius,
		Speed:         speed,
	}
}

// Waypoint returns the current pose
func (c *Car) Waypoint() geometry.Waypoint {
	return geometry.Waypoint{X: c.X, Y: c.Y, Orientation: c.Theta}
}

// Update advances the car by dt. steeringAngle is a turn rate: the requested
// radius is speed/|steeringAngle|, clamped to MinTurnRadius. Positive steering
// turns counter-clockwise, negative clockwise. Position follows the exact
// circular arc. A zero steering angle drives straight.
func (c *Car) Update(steeringAngle, speed, dt float64) {
	c.Speed = speed

	if steeringAngle == 0 {
		c.X += speed * dt * math.Cos(c.Theta)
		c.Y += speed * dt * math.Sin(c.Theta)
		return
	}

	turnRadius := speed / math.Abs(steeringAngle)
	if turnRadius < c.MinTurnRadius {
		steeringAngle = math.Copysign(speed/c.MinTurnRadius, steeringAngle)
		turnRadius = c.MinTurnRadius
	}
	if turnRadius == 0 {
		return
	}

	// signed radius: negative for clockwise turns
	radius := math.Copysign(turnRadius, steeringAngle)

	dTheta := speed * dt / radius
	dx := radius * (math.Sin(c.Theta+dTheta) - math.Sin(c.Theta))
	dy := radius * (math.Cos(c.Theta) - math.Cos(c.Theta+dTheta))

	c.X += dx
	c.Y += dy
	c.Theta += dTheta

	if c.Theta > math.Pi {
		c.Theta -= 2 * math.Pi
	} else if c.Theta <= -math.Pi {
		c.Theta += 2 * math.Pi
	}
}

// Control is one integration step
type Control struct {
	Steering float64 `json:"steering"`
	Speed    float64 `json:"speed"`
	Dt       float64 `json:"dt"`
}

// Trace applies controls in order and returns the pose after each step,
// preceded by the starting pose
func Trace(c *Car, controls []Control) []geometry.Waypoint {
	states := make([]geometry.Waypoint, 0, len(controls)+1)
	states = append(states, c.Waypoint())
	for _, ctl := range controls {
		c.Update(ctl.Steering, ctl.Speed, ctl.Dt)
		states = append(states, c.Waypoint())
	}
	return states
}
