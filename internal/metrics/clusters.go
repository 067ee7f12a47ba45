package metrics

import (
	"github.com/san-kum/bubblepop/internal/game"
)

// Popped sums bubbles removed by clusters and, optionally, by drops.
type Popped struct {
	name        string
	withDropped bool
	total       int
}

func NewPopped() *Popped { return &Popped{name: "popped"} }

// NewCleared counts every bubble taken off the board, dropped ones included.
func NewCleared() *Popped { return &Popped{name: "cleared", withDropped: true} }

func (m *Popped) Name() string { return m.name }

func (m *Popped) Observe(s *game.State, in game.Input, res game.StepResult) {
	m.total += res.Popped
	if m.withDropped {
		m.total += res.Dropped
	}
}

func (m *Popped) Value() float64 { return float64(m.total) }
func (m *Popped) Reset()         { m.total = 0 }

// LargestCluster tracks the biggest cluster popped in one shot.
type LargestCluster struct {
	name string
	max  int
}

func NewLargestCluster() *LargestCluster { return &LargestCluster{name: "largest_cluster"} }

func (m *LargestCluster) Name() string { return m.name }

func (m *LargestCluster) Observe(s *game.State, in game.Input, res game.StepResult) {
	if res.Popped > m.max {
		m.max = res.Popped
	}
}

func (m *LargestCluster) Value() float64 { return float64(m.max) }
func (m *LargestCluster) Reset()         { m.max = 0 }

// Accuracy is popped bubbles per launched shot.
type Accuracy struct {
	name   string
	shots  int
	popped int
}

func NewAccuracy() *Accuracy { return &Accuracy{name: "accuracy"} }

func (m *Accuracy) Name() string { return m.name }

func (m *Accuracy) Observe(s *game.State, in game.Input, res game.StepResult) {
	if res.Launched {
		m.shots++
	}
	m.popped += res.Popped
}

func (m *Accuracy) Value() float64 {
	if m.shots == 0 {
		return 0
	}
	return float64(m.popped) / float64(m.shots)
}

func (m *Accuracy) Reset() {
	m.shots = 0
	m.popped = 0
}
