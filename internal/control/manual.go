package control

import "github.com/san-kum/bubblepop/internal/game"

// Manual passes input gathered by a front end to the game. Fire and Move are
// consumed by the next Compute; the aim angle persists.
type Manual struct {
	in game.Input
}

func NewManual() *Manual {
	return &Manual{in: game.Input{Aim: true, Angle: game.Up}}
}

func (c *Manual) AimAt(angle float64) {
	c.in.Aim = true
	c.in.Angle = angle
}

// Turn rotates the aim by delta radians.
func (c *Manual) Turn(delta float64) {
	c.in.Aim = true
	c.in.Angle = game.ClampAim(c.in.Angle + delta)
}

func (c *Manual) Angle() float64 { return c.in.Angle }

func (c *Manual) Fire()            { c.in.Fire = true }
func (c *Manual) Move(dir float64) { c.in.Move += dir }

// Reset drops any pending shot or move and points the shooter straight up.
func (c *Manual) Reset() { c.in = game.Input{Aim: true, Angle: game.Up} }

func (c *Manual) Compute(s *game.State) game.Input {
	in := c.in
	c.in.Fire = false
	c.in.Move = 0
	return in
}
