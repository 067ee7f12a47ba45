package metrics

import (
	"github.com/san-kum/bubblepop/internal/game"
)

// Shots counts launched projectiles.
type Shots struct {
	name  string
	count int
}

func NewShots() *Shots { return &Shots{name: "shots"} }

func (m *Shots) Name() string { return m.name }

func (m *Shots) Observe(s *game.State, in game.Input, res game.StepResult) {
	if res.Launched {
		m.count++
	}
}

func (m *Shots) Value() float64 { return float64(m.count) }
func (m *Shots) Reset()         { m.count = 0 }

// Misses counts shots that left through the bottom or could not be placed.
type Misses struct {
	name  string
	count int
}

func NewMisses() *Misses { return &Misses{name: "misses"} }

func (m *Misses) Name() string { return m.name }

func (m *Misses) Observe(s *game.State, in game.Input, res game.StepResult) {
	if res.Missed || res.Skipped {
		m.count++
	}
}

func (m *Misses) Value() float64 { return float64(m.count) }
func (m *Misses) Reset()         { m.count = 0 }
