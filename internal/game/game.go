// Package game holds the rules and the frame step of a bubble shooter.
//
// A Game owns one State and a seeded random source. Step applies a single
// frame of Input and returns what happened; nothing else mutates the state.
// The package has no rendering or timing of its own, so the same game runs
// under the terminal front end, the window front end and the headless
// simulator.
package game

import (
	"math/rand"

	"github.com/san-kum/bubblepop/internal/field"
)

type Game struct {
	rules Rules
	seed  int64
	rng   *rand.Rand
	state State
}

// New validates rules and deals a fresh board from seed.
func New(rules Rules, seed int64) (*Game, error) {
	rules = rules.normalize()
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	g := &Game{rules: rules, seed: seed}
	g.deal()
	return g, nil
}

// NewFromState resumes play from a prepared state. The state is cloned. A
// state without a board gets an empty one.
func NewFromState(rules Rules, s State, seed int64) (*Game, error) {
	rules = rules.normalize()
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	g := &Game{rules: rules, seed: seed, rng: rand.New(rand.NewSource(seed))}
	g.state = s.Clone()
	switch rules.Mode {
	case ModeFree:
		if g.state.Free == nil {
			g.state.Free = field.NewFree(rules.Radius)
		}
		g.state.Grid = nil
	case ModeGrid:
		if g.state.Grid == nil {
			g.state.Grid = field.NewGrid(rules.Rows, rules.Cols, rules.CellSize())
		}
		g.state.Free = nil
	}
	if g.state.Angle == 0 {
		g.state.Angle = Up
	}
	if rules.Mode == ModeFree && g.state.Tries == 0 {
		g.state.Tries = rules.Tries
	}
	if g.state.NextTryAt == 0 {
		g.state.NextTryAt = rules.ExtraTryEvery
	}
	if g.state.ShooterX == 0 {
		g.state.ShooterX = rules.Width / 2
	}
	if g.state.Next.Empty() {
		g.state.Next = g.pick()
	}
	if g.state.Shot.Color.Empty() {
		g.reload()
	}
	return g, nil
}

func (r Rules) normalize() Rules {
	if r.Mode == ModeGrid {
		r.Width = float64(r.Cols) * r.CellSize()
	}
	if r.SpawnHeight <= 0 {
		r.SpawnHeight = r.Height / 2
	}
	if r.MoveStep <= 0 {
		r.MoveStep = r.Radius / 2
	}
	if !r.Cluster.Wildcard {
		r.WildcardChance = 0
	}
	return r
}

func (g *Game) Rules() Rules { return g.rules }
func (g *Game) Seed() int64  { return g.seed }

// State returns a copy of the current state.
func (g *Game) State() State { return g.state.Clone() }

// Peek returns the live state without copying. Callers must not mutate it.
func (g *Game) Peek() *State { return &g.state }

// Reset starts a new game with the next seed.
func (g *Game) Reset() {
	g.seed++
	g.deal()
}

func (g *Game) deal() {
	g.rng = rand.New(rand.NewSource(g.seed))
	r := g.rules
	g.state = State{
		Phase:     Aiming,
		ShooterX:  r.Width / 2,
		Angle:     Up,
		Tries:     r.Tries,
		NextTryAt: r.ExtraTryEvery,
	}

	switch r.Mode {
	case ModeFree:
		g.state.Free = field.NewFree(r.Radius)
		g.spawnFree(r.InitialBubbles)
	case ModeGrid:
		g.state.Grid = field.NewGrid(r.Rows, r.Cols, r.CellSize())
		g.state.Grid.Fill(r.FilledRows, g.pickPlain)
	}

	g.state.Next = g.pick()
	g.reload()
}

// spawnFree scatters n bubbles over the upper part of the surface without
// letting any two touch.
func (g *Game) spawnFree(n int) {
	r := g.rules
	f := g.state.Free
	for placed, attempts := 0, 0; placed < n && attempts < n*50; attempts++ {
		x := r.Radius + g.rng.Float64()*(r.Width-2*r.Radius)
		y := r.Radius + g.rng.Float64()*(r.SpawnHeight-r.Radius)
		p := field.V(x, y)
		if f.Touching(p) {
			continue
		}
		f.Add(field.Bubble{Pos: p, Color: g.pickPlain()})
		placed++
	}
}

func (g *Game) pickPlain() field.Color {
	p := g.rules.Palette
	return p[g.rng.Intn(len(p))]
}

func (g *Game) pick() field.Color {
	if g.rules.WildcardChance > 0 && g.rng.Float64() < g.rules.WildcardChance {
		return field.Wildcard
	}
	return g.pickPlain()
}

// reload puts the queued colour on the shooter and queues another.
func (g *Game) reload() {
	s := &g.state
	s.Shot = field.Bubble{Pos: g.rules.ShooterPos(s.ShooterX), Color: s.Next}
	s.Next = g.pick()
	s.Phase = Aiming
}

// Step advances the game by one frame.
func (g *Game) Step(in Input) StepResult {
	var res StepResult
	s := &g.state
	if s.Phase == Over {
		res.Over, res.Cleared = true, s.Cleared
		return res
	}
	s.Frame++

	if s.Phase == Aiming {
		g.aim(in, &res)
		return res
	}

	g.fly(&res)
	return res
}

func (g *Game) aim(in Input, res *StepResult) {
	s := &g.state
	r := g.rules
	if in.Move != 0 {
		s.ShooterX = field.Clamp(s.ShooterX+in.Move*r.MoveStep, r.Radius, r.Width-r.Radius)
		s.Shot.Pos = r.ShooterPos(s.ShooterX)
	}
	if in.Aim {
		s.Angle = ClampAim(in.Angle)
	}
	if in.Fire {
		s.Shot.Vel = field.FromAngle(s.Angle, r.Speed)
		s.Phase = InFlight
		s.Shots++
		res.Launched = true
	}
}

func (g *Game) fly(res *StepResult) {
	s := &g.state
	r := g.rules
	shot := &s.Shot
	shot.Pos = shot.Pos.Add(shot.Vel)

	if (shot.Pos.X < r.Radius && shot.Vel.X < 0) || (shot.Pos.X > r.Width-r.Radius && shot.Vel.X > 0) {
		shot.Vel.X = -shot.Vel.X
	}

	if shot.Pos.Y < r.Radius {
		if r.Mode == ModeGrid {
			g.attach(res)
			return
		}
		if shot.Vel.Y < 0 {
			shot.Vel.Y = -shot.Vel.Y
		}
	}

	if shot.Pos.Y > r.Height-r.Radius && shot.Vel.Y > 0 {
		g.miss(res)
		return
	}

	if g.touching(shot.Pos) {
		g.attach(res)
	}
}

func (g *Game) touching(p field.Vec) bool {
	if g.state.Free != nil {
		return g.state.Free.Touching(p)
	}
	return g.state.Grid.Touching(p)
}

// miss handles a projectile leaving through the bottom. The free variant
// charges a try for it.
func (g *Game) miss(res *StepResult) {
	s := &g.state
	res.Missed = true
	if g.rules.Mode == ModeFree {
		s.Tries--
		if s.Tries <= 0 {
			g.finish(res, false)
			return
		}
	}
	g.reload()
}

func (g *Game) finish(res *StepResult, cleared bool) {
	g.state.Phase = Over
	g.state.Cleared = cleared
	res.Over = true
	res.Cleared = cleared
}
