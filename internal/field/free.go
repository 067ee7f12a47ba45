package field

// Free is a board of free-floating bubbles. Adjacency is distance based.
type Free struct {
	radius  float64
	bubbles []Bubble
}

func NewFree(radius float64) *Free {
	return &Free{radius: radius, bubbles: make([]Bubble, 0, 32)}
}

func (f *Free) Radius() float64 { return f.radius }
func (f *Free) Len() int        { return len(f.bubbles) }
func (f *Free) Count() int      { return len(f.bubbles) }

func (f *Free) At(i int) Bubble { return f.bubbles[i] }

func (f *Free) ColorAt(i int) Color { return f.bubbles[i].Color }

// Bubbles returns a copy of the field contents.
func (f *Free) Bubbles() []Bubble {
	out := make([]Bubble, len(f.bubbles))
	copy(out, f.bubbles)
	return out
}

// Add places b at rest and returns its index.
func (f *Free) Add(b Bubble) int {
	b.Vel = Vec{}
	f.bubbles = append(f.bubbles, b)
	return len(f.bubbles) - 1
}

// Neighbors calls fn for every bubble touching bubble i.
func (f *Free) Neighbors(i int, fn func(j int)) {
	c := f.bubbles[i]
	for j := range f.bubbles {
		if j != i && c.Touches(f.bubbles[j], f.radius) {
			fn(j)
		}
	}
}

// Touching reports whether a bubble centered at p touches any field bubble.
func (f *Free) Touching(p Vec) bool {
	ghost := Bubble{Pos: p}
	for _, b := range f.bubbles {
		if ghost.Touches(b, f.radius) {
			return true
		}
	}
	return false
}

// Remove deletes the bubbles at the given indices, keeping the order of the
// rest. Unknown and repeated indices are ignored. It returns how many were
// removed.
func (f *Free) Remove(indices []int) int {
	if len(indices) == 0 {
		return 0
	}
	drop := make([]bool, len(f.bubbles))
	for _, i := range indices {
		if i >= 0 && i < len(drop) {
			drop[i] = true
		}
	}
	kept := f.bubbles[:0]
	removed := 0
	for i, b := range f.bubbles {
		if drop[i] {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	f.bubbles = kept
	return removed
}

// Lowest returns the largest Y among field bubbles, or false on an empty field.
func (f *Free) Lowest() (float64, bool) {
	if len(f.bubbles) == 0 {
		return 0, false
	}
	y := f.bubbles[0].Pos.Y
	for _, b := range f.bubbles[1:] {
		if b.Pos.Y > y {
			y = b.Pos.Y
		}
	}
	return y, true
}

func (f *Free) Clone() *Free {
	return &Free{radius: f.radius, bubbles: f.Bubbles()}
}
