package sim

import (
	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/game"
)

// sampler records a Sample every time a shot settles.
type sampler struct {
	samples []Sample
}

func newSampler(s *game.State) *sampler {
	smp := &sampler{samples: make([]Sample, 0, 64)}
	smp.samples = append(smp.samples, sampleOf(s))
	return smp
}

func (smp *sampler) OnStep(s *game.State, in game.Input, res game.StepResult) {
	if settled(res) {
		smp.samples = append(smp.samples, sampleOf(s))
	}
}

// EventLog writes pops, misses and the end of the game to a logger at
// debug level.
type EventLog struct {
	logger *log.Logger
	seed   int64
}

func NewEventLog(logger *log.Logger, seed int64) *EventLog {
	return &EventLog{logger: logger, seed: seed}
}

func (e *EventLog) OnStep(s *game.State, in game.Input, res game.StepResult) {
	switch {
	case res.Popped > 0:
		e.logger.Debug("cluster popped", "seed", e.seed, "frame", s.Frame, "size", res.Popped, "dropped", res.Dropped, "score", s.Score)
	case res.Missed:
		e.logger.Debug("shot missed", "seed", e.seed, "frame", s.Frame, "tries", s.Tries)
	}
	if res.Over {
		e.logger.Debug("game over", "seed", e.seed, "frame", s.Frame, "score", s.Score, "cleared", res.Cleared)
	}
}
