package sim

import (
	"github.com/san-kum/bubblepop/internal/game"
)

// Aimer decides the input for the next frame. It must treat s as read-only.
type Aimer interface {
	Compute(s *game.State) game.Input
}

type Metric interface {
	Name() string
	Observe(s *game.State, in game.Input, res game.StepResult)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *game.State, in game.Input, res game.StepResult)
}

type Config struct {
	MaxFrames int
	Seed      int64
}

// Sample is the board summary recorded whenever a shot settles, plus the
// first and last frame of a run.
type Sample struct {
	Frame   int `json:"frame"`
	Score   int `json:"score"`
	Bubbles int `json:"bubbles"`
	Tries   int `json:"tries"`
	Shots   int `json:"shots"`
	Popped  int `json:"popped"`
}

type Result struct {
	Seed    int64
	Samples []Sample
	Final   game.State
	Metrics map[string]float64
	Frames  int
	Over    bool
	Cleared bool
}

func (r *Result) Score() int { return r.Final.Score }

func sampleOf(s *game.State) Sample {
	return Sample{
		Frame:   s.Frame,
		Score:   s.Score,
		Bubbles: s.Count(),
		Tries:   s.Tries,
		Shots:   s.Shots,
		Popped:  s.Popped,
	}
}

func settled(res game.StepResult) bool {
	return res.Attached || res.Skipped || res.Missed || res.Over
}
