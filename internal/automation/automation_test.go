package automation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/experiment"
	"github.com/san-kum/bubblepop/internal/storage"
)

const scenarioYAML = `
name: smoke
description: two quick games
steps:
  - name: greedy grid
    preset: grid
    policy: greedy
    seed: 3
    frames: 20000
  - name: random free
    policy: random
    params:
      spread: 0.4
    seed: 4
    frames: 3000
`

func quietRunner(store *storage.Store) *Runner {
	r := NewRunner(experiment.NewRegistry(), store)
	r.SetLogger(log.New(io.Discard))
	return r
}

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	cfg, err := sc.Steps[1].Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "free" || cfg.Policy != "random" || cfg.PolicyParams["spread"] != 0.4 {
		t.Errorf("step config not resolved against classic: %+v", cfg)
	}

	if _, err := ParseScenario([]byte("name: empty\n")); err == nil {
		t.Error("expected error for a scenario without steps")
	}
}

func TestStepUnknownPreset(t *testing.T) {
	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	sc.Steps[0].SaveAs = filepath.Join(dir, "grid.json")

	store := storage.New(filepath.Join(dir, "runs"))
	outcomes, err := quietRunner(store).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Result.Seed != 3 || outcomes[1].Result.Seed != 4 {
		t.Error("step seeds not applied")
	}

	if _, err := os.Stat(sc.Steps[0].SaveAs); err != nil {
		t.Errorf("save_as export missing: %v", err)
	}
	runs, err := store.List()
	if err != nil || len(runs) != 2 {
		t.Errorf("expected 2 stored runs, got %d (%v)", len(runs), err)
	}
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Policy: "none", Frames: 10},
		{Policy: "psychic", Frames: 10},
	}}
	outcomes, err := quietRunner(nil).Run(context.Background(), sc)
	if err == nil {
		t.Fatal("expected error for unknown policy")
	}
	if len(outcomes) != 1 {
		t.Errorf("expected the first outcome to survive, got %d", len(outcomes))
	}
}

func TestSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Preset:    "grid",
		Policy:    "random",
		ParamName: "spread",
		ParamMin:  0,
		ParamMax:  1,
		NumSteps:  3,
		Trials:    2,
		Frames:    5000,
		Seed:      1,
	}
	results, err := quietRunner(nil).Sweep(context.Background(), sweep)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 || results[2].ParamValue != 1 || results[1].Summary.Runs != 2 {
		t.Errorf("unexpected sweep results %+v", results)
	}

	sweep.NumSteps = 1
	if _, err := quietRunner(nil).Sweep(context.Background(), sweep); err == nil {
		t.Error("expected error for a single-step sweep")
	}
}
