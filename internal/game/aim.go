package game

import (
	"math"

	"github.com/san-kum/bubblepop/internal/field"
)

// minAim keeps shots from travelling flat along a wall.
const minAim = 0.08

// Up is the straight-up aim angle in screen coordinates.
const Up = -math.Pi / 2

// ClampAim folds an angle into the upward half plane, away from the
// horizontal by minAim. NaN and infinite angles aim straight up.
func ClampAim(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return Up
	}
	a := math.Mod(angle, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	if a > 0 {
		// below the horizon: snap to the nearer side
		if a > math.Pi/2 {
			return -math.Pi + minAim
		}
		return -minAim
	}
	return field.Clamp(a, -math.Pi+minAim, -minAim)
}

// AngleTo is the aim angle from a shooter at from toward a pointer at to.
func AngleTo(from, to field.Vec) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}
