package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/config"
	"github.com/san-kum/bubblepop/internal/experiment"
	"github.com/san-kum/bubblepop/internal/sim"
	"github.com/san-kum/bubblepop/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of headless games.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one game. Zero fields keep the preset's values.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Policy string             `yaml:"policy"`
	Params map[string]float64 `yaml:"params"`
	Seed   int64              `yaml:"seed"`
	Frames int                `yaml:"frames"`
	SaveAs string             `yaml:"save_as"`
}

type StepOutcome struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step against its preset.
func (s ScenarioStep) Config() (*config.Config, error) {
	preset := s.Preset
	if preset == "" {
		preset = "classic"
	}
	cfg, err := config.Preset(preset)
	if err != nil {
		return nil, err
	}
	if s.Policy != "" {
		cfg.Policy = s.Policy
	}
	if len(s.Params) > 0 {
		cfg.PolicyParams = s.Params
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Frames > 0 {
		cfg.MaxFrames = s.Frames
	}
	return cfg, nil
}

// Runner executes scenarios. A nil store skips saving runs.
type Runner struct {
	registry *experiment.Registry
	store    *storage.Store
	logger   *log.Logger
}

func NewRunner(registry *experiment.Registry, store *storage.Store) *Runner {
	return &Runner{registry: registry, store: store, logger: log.Default()}
}

func (r *Runner) SetLogger(l *log.Logger) { r.logger = l }

// Run plays every step in order and stops at the first failure, returning
// the outcomes collected so far.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepOutcome, error) {
	outcomes := make([]StepOutcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		r.logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", step.Name, "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg, r.registry)
		if err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		exp.SetLogger(r.logger)

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		outcome := StepOutcome{Step: step, Result: result}
		info := storage.RunInfo{
			Preset:       step.Preset,
			Mode:         cfg.Mode,
			Policy:       cfg.Policy,
			PolicyParams: cfg.PolicyParams,
			Seed:         cfg.Seed,
			MaxFrames:    cfg.MaxFrames,
		}

		if r.store != nil {
			id, err := r.store.Save(info, result)
			if err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
			outcome.RunID = id
		}
		if step.SaveAs != "" {
			if err := storage.ExportJSON(step.SaveAs, info, result); err != nil {
				return outcomes, fmt.Errorf("step %d export: %w", i+1, err)
			}
		}

		r.logger.Info("step done", "step", i+1, "score", result.Score(), "frames", result.Frames, "cleared", result.Cleared)
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// ParameterSweep plays Trials seeds for each value of one policy parameter.
type ParameterSweep struct {
	Preset    string
	Policy    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Trials    int
	Frames    int
	Seed      int64
}

type SweepResult struct {
	ParamValue float64
	Summary    sim.Summary
}

func (r *Runner) Sweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	trials := sweep.Trials
	if trials <= 0 {
		trials = 1
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		step := ScenarioStep{
			Preset: sweep.Preset,
			Policy: sweep.Policy,
			Params: map[string]float64{sweep.ParamName: paramVal},
			Seed:   sweep.Seed,
			Frames: sweep.Frames,
		}
		cfg, err := step.Config()
		if err != nil {
			return nil, err
		}
		exp, err := experiment.New(cfg, r.registry)
		if err != nil {
			return nil, err
		}
		exp.SetLogger(r.logger)

		runs, err := exp.RunEnsemble(ctx, trials)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Summary: sim.Summarize(runs)})
		r.logger.Info("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
