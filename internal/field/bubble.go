package field

// Bubble is a coloured disc. Vel is only meaningful for the projectile.
type Bubble struct {
	Pos   Vec
	Color Color
	Vel   Vec
}

func NewBubble(x, y float64, c Color) Bubble {
	return Bubble{Pos: V(x, y), Color: c}
}

// Touches reports whether two bubbles of radius r are in contact.
func (b Bubble) Touches(o Bubble, r float64) bool {
	return b.Pos.Dist(o.Pos) < 2*r
}

func (b Bubble) Moving() bool {
	return b.Vel.X != 0 || b.Vel.Y != 0
}
