package game

import (
	"math"

	"github.com/san-kum/bubblepop/internal/cluster"
	"github.com/san-kum/bubblepop/internal/field"
)

// attach turns the projectile into a resting bubble, resolves its cluster
// and loads the next shot.
func (g *Game) attach(res *StepResult) {
	s := &g.state
	shot := s.Shot

	seed, ok := g.place(shot)
	if !ok {
		res.Skipped = true
	} else {
		res.Attached = true
		g.resolve(seed, res)
	}

	if g.checkOver(res) {
		return
	}
	g.reload()
}

// place stores the projectile on the board and returns its index.
func (g *Game) place(shot field.Bubble) (int, bool) {
	s := &g.state
	if s.Free != nil {
		return s.Free.Add(field.Bubble{Pos: shot.Pos, Color: shot.Color}), true
	}

	grid := s.Grid
	row, col := grid.CellAt(shot.Pos)
	if !grid.In(row, col) {
		return 0, false
	}
	if !grid.At(row, col).Empty() {
		row, col, ok := nearestFree(grid, row, col, shot.Pos)
		if !ok {
			return 0, false
		}
		grid.Set(row, col, shot.Color)
		return grid.Index(row, col), true
	}
	grid.Set(row, col, shot.Color)
	return grid.Index(row, col), true
}

// nearestFree picks the empty in-range cell around (row, col) whose center
// is closest to p.
func nearestFree(grid *field.Grid, row, col int, p field.Vec) (int, int, bool) {
	bestR, bestC, best := 0, 0, math.Inf(1)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if !grid.In(r, c) || !grid.At(r, c).Empty() {
				continue
			}
			if d := grid.Center(r, c).Dist(p); d < best {
				bestR, bestC, best = r, c, d
			}
		}
	}
	return bestR, bestC, !math.IsInf(best, 1)
}

func (g *Game) graph() cluster.Graph {
	if g.state.Free != nil {
		return g.state.Free
	}
	return g.state.Grid
}

// resolve grows the cluster from seed and applies the removal policy.
func (g *Game) resolve(seed int, res *StepResult) {
	s := &g.state
	r := g.rules
	graph := g.graph()

	members := r.Cluster.Find(graph, seed)
	res.Cluster = len(members)
	if !r.Cluster.Pops(graph, members) {
		return
	}

	if s.Free != nil {
		res.Popped = s.Free.Remove(members)
	} else {
		res.Popped = s.Grid.ClearIndices(members)
		res.Dropped = s.Grid.ClearIndices(cluster.Floating(s.Grid))
	}

	points := r.ClusterPoints(res.Popped) + res.Dropped*r.DropPoints
	res.Points = points
	s.Score += points
	s.Popped += res.Popped
	s.Dropped += res.Dropped

	if r.ExtraTryEvery > 0 && r.Mode == ModeFree {
		for s.Score >= s.NextTryAt {
			s.Tries++
			s.NextTryAt += r.ExtraTryEvery
			res.ExtraTries++
		}
	}
}

// checkOver ends the game when the board overflows or is cleared.
func (g *Game) checkOver(res *StepResult) bool {
	s := &g.state
	r := g.rules

	if s.Count() == 0 {
		g.finish(res, true)
		return true
	}

	if s.Free != nil {
		if low, ok := s.Free.Lowest(); ok && low+r.Radius > r.Height-r.Radius {
			g.finish(res, false)
			return true
		}
		return false
	}

	if s.Grid.RowOccupied(s.Grid.Rows() - 1) {
		g.finish(res, false)
		return true
	}
	return false
}
