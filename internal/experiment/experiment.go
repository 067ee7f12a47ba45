package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/config"
	"github.com/san-kum/bubblepop/internal/game"
	"github.com/san-kum/bubblepop/internal/sim"
)

// Experiment binds a validated config to the registry's policies and metrics.
type Experiment struct {
	cfg      *config.Config
	rules    game.Rules
	registry *Registry
	logger   *log.Logger
}

func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !registry.HasPolicy(cfg.Policy) {
		return nil, fmt.Errorf("unknown policy: %s (available: %v)", cfg.Policy, registry.ListPolicies())
	}
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	return &Experiment{
		cfg:      cfg.Clone(),
		rules:    rules,
		registry: registry,
		logger:   log.Default(),
	}, nil
}

func (e *Experiment) SetLogger(l *log.Logger) { e.logger = l }

func (e *Experiment) Config() *config.Config { return e.cfg }
func (e *Experiment) Rules() game.Rules      { return e.rules }

// Simulator builds a simulator for one seed with the default metrics.
func (e *Experiment) Simulator(seed int64) (*sim.Simulator, error) {
	aimer, err := e.registry.GetPolicy(e.cfg.Policy, e.cfg.PolicyParams, seed)
	if err != nil {
		return nil, err
	}
	s := sim.New(e.rules, aimer)
	s.SetLogger(e.logger)
	s.AddObserver(sim.NewEventLog(e.logger, seed))
	for _, m := range e.registry.DefaultMetrics() {
		s.AddMetric(m)
	}
	return s, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	s, err := e.Simulator(e.cfg.Seed)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, sim.Config{MaxFrames: e.cfg.MaxFrames, Seed: e.cfg.Seed})
}

// RunEnsemble plays runs games on consecutive seeds starting at the
// configured one.
func (e *Experiment) RunEnsemble(ctx context.Context, runs int) ([]*sim.Result, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}
	aimers := make(map[int64]sim.Aimer, runs)
	for i := 0; i < runs; i++ {
		seed := e.cfg.Seed + int64(i)
		a, err := e.registry.GetPolicy(e.cfg.Policy, e.cfg.PolicyParams, seed)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		aimers[seed] = a
	}
	newAimer := func(seed int64) sim.Aimer { return aimers[seed] }
	ens := sim.NewEnsemble(e.rules, newAimer, e.registry.DefaultMetrics, runs, e.cfg.Seed)
	ens.SetLogger(e.logger)
	return ens.Run(ctx, e.cfg.MaxFrames)
}
