package metrics

import (
	"testing"

	"github.com/san-kum/bubblepop/internal/game"
)

func feed(m interface {
	Observe(*game.State, game.Input, game.StepResult)
}, results ...game.StepResult) {
	s := &game.State{}
	for _, r := range results {
		m.Observe(s, game.Input{}, r)
	}
}

func TestAccuracy(t *testing.T) {
	m := NewAccuracy()
	if m.Value() != 0 {
		t.Error("accuracy without shots should be 0")
	}

	feed(m,
		game.StepResult{Launched: true},
		game.StepResult{Attached: true, Popped: 4},
		game.StepResult{Launched: true},
		game.StepResult{Attached: true},
	)
	if m.Value() != 2 {
		t.Errorf("expected 2 bubbles per shot, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

func TestPoppedAndCleared(t *testing.T) {
	popped, cleared := NewPopped(), NewCleared()
	results := []game.StepResult{
		{Popped: 3, Dropped: 2},
		{Popped: 5},
	}
	feed(popped, results...)
	feed(cleared, results...)

	if popped.Value() != 8 {
		t.Errorf("expected 8 popped, got %f", popped.Value())
	}
	if cleared.Value() != 10 {
		t.Errorf("expected 10 cleared, got %f", cleared.Value())
	}
}

func TestLargestCluster(t *testing.T) {
	m := NewLargestCluster()
	feed(m, game.StepResult{Popped: 3}, game.StepResult{Popped: 7}, game.StepResult{Popped: 4})
	if m.Value() != 7 {
		t.Errorf("expected 7, got %f", m.Value())
	}
}

func TestShotsAndMisses(t *testing.T) {
	shots, misses := NewShots(), NewMisses()
	results := []game.StepResult{
		{Launched: true},
		{Missed: true},
		{Launched: true},
		{Skipped: true},
		{Launched: true},
		{Attached: true},
	}
	feed(shots, results...)
	feed(misses, results...)

	if shots.Value() != 3 || misses.Value() != 2 {
		t.Errorf("expected 3 shots and 2 misses, got %.0f and %.0f", shots.Value(), misses.Value())
	}
}
