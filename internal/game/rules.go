package game

import (
	"fmt"

	"github.com/san-kum/bubblepop/internal/cluster"
	"github.com/san-kum/bubblepop/internal/field"
)

type Mode string

const (
	ModeFree Mode = "free"
	ModeGrid Mode = "grid"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFree, ModeGrid:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Rules fixes the board geometry and the scoring of one game variant.
type Rules struct {
	Mode    Mode
	Width   float64
	Height  float64
	Radius  float64
	Speed   float64
	Palette []field.Color

	// free variant
	InitialBubbles int
	SpawnHeight    float64
	Tries          int
	ExtraTryEvery  int

	// grid variant
	Rows       int
	Cols       int
	FilledRows int

	Cluster        cluster.Rule
	WildcardChance float64

	PointsPerBubble int
	BonusPerExtra   int
	DropPoints      int

	// MoveStep is how far one unit of Input.Move shifts the shooter.
	MoveStep float64
}

// FreeRules is the free-floating variant: an 800x600 surface, radius 20,
// five random bubbles in the upper half and three tries.
func FreeRules() Rules {
	return Rules{
		Mode:            ModeFree,
		Width:           800,
		Height:          600,
		Radius:          20,
		Speed:           5,
		Palette:         append([]field.Color(nil), field.DefaultPalette...),
		InitialBubbles:  5,
		SpawnHeight:     300,
		Tries:           3,
		ExtraTryEvery:   1000,
		Cluster:         cluster.DefaultRule(),
		PointsPerBubble: 100,
		MoveStep:        10,
	}
}

// GridRules is the grid variant: 12 rows of 8 cells of 40px, the first five
// rows filled.
func GridRules() Rules {
	return Rules{
		Mode:            ModeGrid,
		Width:           320,
		Height:          640,
		Radius:          20,
		Speed:           5,
		Palette:         append([]field.Color(nil), field.GridPalette...),
		Rows:            12,
		Cols:            8,
		FilledRows:      5,
		Cluster:         cluster.DefaultRule(),
		PointsPerBubble: 10,
		BonusPerExtra:   5,
		DropPoints:      5,
		MoveStep:        10,
	}
}

func (r Rules) CellSize() float64 { return 2 * r.Radius }

// ShooterPos is where a fresh projectile rests before launch.
func (r Rules) ShooterPos(x float64) field.Vec {
	if r.Mode == ModeGrid {
		return field.V(x, r.Height-r.CellSize())
	}
	return field.V(x, r.Height-r.Radius)
}

// ClusterPoints is the score for popping a cluster of n bubbles.
func (r Rules) ClusterPoints(n int) int {
	extra := n - r.Cluster.MinSize
	if extra < 0 {
		extra = 0
	}
	return n*r.PointsPerBubble + extra*r.BonusPerExtra
}

func (r Rules) Validate() error {
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return err
	}
	switch {
	case r.Radius <= 0:
		return &RuleError{"radius", "must be positive"}
	case r.Speed <= 0:
		return &RuleError{"speed", "must be positive"}
	case len(r.Palette) == 0:
		return &RuleError{"palette", "must not be empty"}
	case r.Cluster.MinSize < 1:
		return &RuleError{"cluster.min_size", "must be at least 1"}
	case r.Cluster.Wildcard && r.Cluster.WildcardSize < 1:
		return &RuleError{"cluster.wildcard_size", "must be at least 1"}
	case r.WildcardChance < 0 || r.WildcardChance > 1:
		return &RuleError{"wildcard_chance", "must be within [0, 1]"}
	}
	if r.Mode == ModeGrid {
		switch {
		case r.Rows < 2 || r.Cols < 1:
			return &RuleError{"rows/cols", "grid needs at least 2 rows and 1 column"}
		case r.FilledRows < 0 || r.FilledRows >= r.Rows:
			return &RuleError{"filled_rows", "must leave the last row empty"}
		case r.Height < float64(r.Rows+1)*r.CellSize():
			return &RuleError{"height", "must fit the grid and the shooter"}
		}
		return nil
	}
	switch {
	case r.Width < 2*r.CellSize() || r.Height < 4*r.CellSize():
		return &RuleError{"width/height", "surface too small for the radius"}
	case r.Tries < 1:
		return &RuleError{"tries", "must be at least 1"}
	case r.InitialBubbles < 0:
		return &RuleError{"initial_bubbles", "must not be negative"}
	case r.ExtraTryEvery < 0:
		return &RuleError{"extra_try_every", "must not be negative"}
	}
	return nil
}
