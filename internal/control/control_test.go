package control

import (
	"math"
	"testing"

	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
)

func freeState(shot field.Color, bubbles ...field.Bubble) *game.State {
	f := field.NewFree(20)
	for _, b := range bubbles {
		f.Add(b)
	}
	return &game.State{
		Phase: game.Aiming,
		Free:  f,
		Shot:  field.Bubble{Pos: field.V(400, 580), Color: shot},
	}
}

func TestNoneNeverFires(t *testing.T) {
	if in := NewNone().Compute(freeState(field.Red)); in.Fire || in.Aim {
		t.Errorf("expected empty input, got %+v", in)
	}
}

func TestManualConsumesFire(t *testing.T) {
	m := NewManual()
	m.AimAt(-1)
	m.Fire()
	m.Move(1)

	in := m.Compute(nil)
	if !in.Fire || in.Move != 1 || in.Angle != -1 {
		t.Fatalf("unexpected first input %+v", in)
	}
	in = m.Compute(nil)
	if in.Fire || in.Move != 0 || in.Angle != -1 {
		t.Errorf("fire and move should be consumed, aim kept: %+v", in)
	}

	m.Turn(-10)
	if a := m.Angle(); a >= 0 || a <= -math.Pi {
		t.Errorf("turn should clamp into the upward half plane, got %.3f", a)
	}
}

func TestManualReset(t *testing.T) {
	m := NewManual()
	m.AimAt(-2)
	m.Fire()
	m.Move(-1)
	m.Reset()

	in := m.Compute(nil)
	if in.Fire || in.Move != 0 || in.Angle != game.Up {
		t.Errorf("reset should drop pending input, got %+v", in)
	}
}

func TestRandomStaysInSpread(t *testing.T) {
	r := NewRandom(0.5, 1)
	s := freeState(field.Red)
	for i := 0; i < 100; i++ {
		in := r.Compute(s)
		if !in.Fire {
			t.Fatal("random aimer should fire while aiming")
		}
		if math.Abs(in.Angle-game.Up) > 0.5 {
			t.Fatalf("angle %.3f outside spread", in.Angle)
		}
	}

	s.Phase = game.InFlight
	if in := r.Compute(s); in.Fire {
		t.Error("must not fire while a shot is in flight")
	}
}

func TestGreedyTargetsLargestMatchingCluster(t *testing.T) {
	s := freeState(field.Red,
		field.NewBubble(100, 100, field.Red),
		field.NewBubble(600, 100, field.Red),
		field.NewBubble(635, 100, field.Red),
		field.NewBubble(300, 200, field.Blue),
		field.NewBubble(330, 200, field.Blue),
		field.NewBubble(360, 200, field.Blue),
	)

	target, ok := Target(s)
	if !ok {
		t.Fatal("expected a target")
	}
	if target.X < 600 {
		t.Errorf("expected the red pair, got %+v", target)
	}

	in := NewGreedy(0, 1).Compute(s)
	want := game.AngleTo(s.Shot.Pos, target)
	if !in.Fire || math.Abs(in.Angle-want) > 1e-9 {
		t.Errorf("expected fire at %.3f, got %+v", want, in)
	}
}

func TestGreedyWithoutMatchShootsUp(t *testing.T) {
	s := freeState(field.Yellow, field.NewBubble(100, 100, field.Red))
	if _, ok := Target(s); ok {
		t.Error("no yellow bubble should mean no target")
	}
	if in := NewGreedy(0, 1).Compute(s); in.Angle != game.Up {
		t.Errorf("expected straight up, got %.3f", in.Angle)
	}
}

func TestGreedyGridTarget(t *testing.T) {
	g := field.NewGrid(4, 4, 40)
	g.Set(0, 0, field.Green)
	g.Set(1, 0, field.Green)
	g.Set(0, 3, field.Blue)
	s := &game.State{
		Phase: game.Aiming,
		Grid:  g,
		Shot:  field.Bubble{Pos: field.V(80, 140), Color: field.Green},
	}
	target, ok := Target(s)
	if !ok || target != g.Center(1, 0) {
		t.Errorf("expected lowest green cell, got %+v %v", target, ok)
	}
}
