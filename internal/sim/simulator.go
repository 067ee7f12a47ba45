package sim

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/game"
)

type Simulator struct {
	rules     game.Rules
	aimer     Aimer
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(rules game.Rules, aimer Aimer) *Simulator {
	return &Simulator{
		rules:     rules,
		aimer:     aimer,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    log.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric)      { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)  { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *log.Logger) { s.logger = l }
func (s *Simulator) Rules() game.Rules       { return s.rules }
func (s *Simulator) Metrics() []Metric       { return s.metrics }

// Run plays one game from cfg.Seed until it ends or cfg.MaxFrames elapse.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	g, err := game.New(s.rules, cfg.Seed)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Seed:    cfg.Seed,
		Metrics: make(map[string]float64),
	}
	st := g.Peek()
	rec := newSampler(st)
	observers := append([]Observer{rec}, s.observers...)

	for i := 0; i < cfg.MaxFrames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, g, rec)
			return result, ctx.Err()
		default:
		}

		in := s.aimer.Compute(st)
		res := g.Step(in)

		for _, m := range s.metrics {
			m.Observe(st, in, res)
		}
		for _, obs := range observers {
			obs.OnStep(st, in, res)
		}

		if res.Over {
			break
		}
	}

	s.finish(result, g, rec)
	return result, nil
}

func (s *Simulator) finish(result *Result, g *game.Game, rec *sampler) {
	st := g.Peek()
	if last := rec.samples[len(rec.samples)-1]; last.Frame != st.Frame {
		rec.samples = append(rec.samples, sampleOf(st))
	}
	result.Samples = rec.samples
	result.Final = g.State()
	result.Frames = st.Frame
	result.Over = st.Over()
	result.Cleared = st.Cleared
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	s.logger.Debug("run finished", "seed", result.Seed, "frames", result.Frames, "score", st.Score)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.MaxFrames <= 0 {
		return fmt.Errorf("max frames must be positive, got %d", cfg.MaxFrames)
	}
	if s.aimer == nil {
		return fmt.Errorf("simulator has no aimer")
	}
	return nil
}

// RunWithCallback streams every frame to the observers and then callback
// until the game ends, the frame cap is hit or callback returns false.
// Metrics are not updated.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(st *game.State, res game.StepResult) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	g, err := game.New(s.rules, cfg.Seed)
	if err != nil {
		return err
	}
	st := g.Peek()

	for i := 0; i < cfg.MaxFrames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		in := s.aimer.Compute(st)
		res := g.Step(in)
		for _, o := range s.observers {
			o.OnStep(st, in, res)
		}
		if !callback(st, res) || res.Over {
			return nil
		}
	}

	return nil
}
