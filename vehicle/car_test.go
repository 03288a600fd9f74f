package vehicle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dubins-planner/geometry"
)

func TestFullLoopReturnsToStart(t *testing.T) {
	car := NewCar(geometry.Waypoint{X: 3, Y: -2, Orientation: 0.3}, 1, 1)

	const steps = 100
	dt := 2 * math.Pi / steps
	for i := 0; i < steps; i++ {
		// far tighter than the car can manage, so it is clamped to radius 1
		car.Update(10, 1, dt)
	}

	assert.InDelta(t, 3, car.X, 1e-9)
	assert.InDelta(t, -2, car.Y, 1e-9)
	assert.InDelta(t, 0, math.Remainder(car.Theta-0.3, 2*math.Pi), 1e-9)
}

func TestStraightLine(t *testing.T) {
	car := NewCar(geometry.Waypoint{X: 1, Y: 1, Orientation: math.Pi / 4}, 2, 0)

	car.Update(0, 3, 2)

	assert.InDelta(t, math.Pi/4, car.Theta, 1e-12)
	assert.InDelta(t, 1+6*math.Cos(math.Pi/4), car.X, 1e-12)
	assert.InDelta(t, 1+6*math.Sin(math.Pi/4), car.Y, 1e-12)
	assert.Equal(t, 3.0, car.Speed)
}

func TestZeroTimeStep(t *testing.T) {
	car := NewCar(geometry.Waypoint{X: 1, Y: 2, Orientation: 1}, 1, 0)

	car.Update(0.5, 2, 0)
	assert.Equal(t, geometry.Waypoint{X: 1, Y: 2, Orientation: 1}, car.Waypoint())

	car.Update(0.5, 0, 1)
	assert.Equal(t, geometry.Waypoint{X: 1, Y: 2, Orientation: 1}, car.Waypoint())
}

func TestQuarterTurns(t *testing.T) {
	tests := []struct {
		name     string
		steering float64
		speed    float64
		dt       float64
		want     geometry.Waypoint
	}{
		{"left at min radius", 5, 1, math.Pi / 2, geometry.Waypoint{X: 1, Y: 1, Orientation: math.Pi / 2}},
		{"right at min radius", -5, 1, math.Pi / 2, geometry.Waypoint{X: 1, Y: -1, Orientation: -math.Pi / 2}},
		{"left wider than min", 0.5, 2, math.Pi, geometry.Waypoint{X: 4, Y: 4, Orientation: math.Pi / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := NewCar(geometry.Waypoint{}, 1, 0)
			car.Update(tt.steering, tt.speed, tt.dt)

			assert.InDelta(t, tt.want.X, car.X, 1e-9)
			assert.InDelta(t, tt.want.Y, car.Y, 1e-9)
			assert.InDelta(t, tt.want.Orientation, car.Theta, 1e-9)
		})
	}
}

func TestHeadingStaysNormalized(t *testing.T) {
	car := NewCar(geometry.Waypoint{Orientation: 3}, 1, 1)
	for i := 0; i < 50; i++ {
		car.Update(1, 1, 0.4)
		assert.LessOrEqual(t, car.Theta, math.Pi)
		assert.Greater(t, car.Theta, -math.Pi)
	}
}

func TestTrace(t *testing.T) {
	car := NewCar(geometry.Waypoint{}, 1, 0)
	states := Trace(car, []Control{
		{Steering: 0, Speed: 1, Dt: 1},
		{Steering: 0, Speed: 1, Dt: 1},
	})

	require.Len(t, states, 3)
	assert.Equal(t, geometry.Waypoint{}, states[0])
	assert.InDelta(t, 2, states[2].X, 1e-12)
	assert.Equal(t, car.Waypoint(), states[2])
}
