package control

import (
	"math/rand"

	"github.com/san-kum/bubblepop/internal/cluster"
	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
)

// Greedy aims at the largest cluster that matches the loaded colour, picking
// its member nearest the bottom of the board. Jitter adds a uniform error of
// up to Jitter radians to every shot.
type Greedy struct {
	Jitter float64
	rng    *rand.Rand
}

func NewGreedy(jitter float64, seed int64) *Greedy {
	return &Greedy{Jitter: jitter, rng: rand.New(rand.NewSource(seed))}
}

func (g *Greedy) Compute(s *game.State) game.Input {
	if s.Phase != game.Aiming {
		return game.Input{}
	}
	angle := game.Up
	if target, ok := Target(s); ok {
		angle = game.AngleTo(s.Shot.Pos, target)
	}
	if g.Jitter > 0 {
		angle += (g.rng.Float64()*2 - 1) * g.Jitter
	}
	return game.AimInput(angle, true)
}

// Target returns the position Greedy would aim at.
func Target(s *game.State) (field.Vec, bool) {
	graph, pos := boardView(s)
	if graph == nil {
		return field.Vec{}, false
	}

	shot := s.Shot.Color
	var best field.Vec
	bestScore := -1.0
	for _, comp := range cluster.Components(graph) {
		c := graph.ColorAt(comp[0])
		if c != shot && !shot.IsWildcard() {
			continue
		}
		low := pos(comp[0])
		for _, i := range comp[1:] {
			if p := pos(i); p.Y > low.Y {
				low = p
			}
		}
		score := float64(len(comp))*1e4 + low.Y
		if score > bestScore {
			best, bestScore = low, score
		}
	}
	return best, bestScore >= 0
}

func boardView(s *game.State) (cluster.Graph, func(i int) field.Vec) {
	switch {
	case s.Free != nil:
		f := s.Free
		return f, func(i int) field.Vec { return f.At(i).Pos }
	case s.Grid != nil:
		g := s.Grid
		return g, func(i int) field.Vec { return g.Center(g.RowCol(i)) }
	}
	return nil, nil
}
