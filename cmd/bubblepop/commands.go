package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bubblepop/internal/automation"
	"github.com/san-kum/bubblepop/internal/config"
	"github.com/san-kum/bubblepop/internal/experiment"
	"github.com/san-kum/bubblepop/internal/export"
	"github.com/san-kum/bubblepop/internal/game"
	"github.com/san-kum/bubblepop/internal/optim"
	"github.com/san-kum/bubblepop/internal/sim"
	"github.com/san-kum/bubblepop/internal/storage"
	"github.com/spf13/cobra"
)

func newExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return nil, err
	}
	exp.SetLogger(logger)
	return exp, nil
}

func runInfo(cfg *config.Config) storage.RunInfo {
	return storage.RunInfo{
		Preset:       preset,
		Mode:         cfg.Mode,
		Policy:       cfg.Policy,
		PolicyParams: cfg.PolicyParams,
		Seed:         cfg.Seed,
		MaxFrames:    cfg.MaxFrames,
	}
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, m[name])
	}
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	logger.Info("running game", "mode", cfg.Mode, "policy", cfg.Policy, "seed", cfg.Seed)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runInfo(cfg), result)
	if err != nil {
		return err
	}

	outcome := "frame cap"
	switch {
	case result.Cleared:
		outcome = "cleared"
	case result.Over:
		outcome = "game over"
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (%s)\n", result.Frames, outcome)
	fmt.Printf("score: %d\n", result.Score())
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func traceGame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	s, err := exp.Simulator(cfg.Seed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tSHOT\tRESULT\tPOPPED\tDROPPED\tSCORE\tBUBBLES")
	err = s.RunWithCallback(cmd.Context(), sim.Config{MaxFrames: cfg.MaxFrames, Seed: cfg.Seed}, func(st *game.State, res game.StepResult) bool {
		outcome := ""
		switch {
		case res.Popped > 0:
			outcome = "pop"
		case res.Attached:
			outcome = "stick"
		case res.Missed:
			outcome = "miss"
		case res.Skipped:
			outcome = "skip"
		}
		if res.Over {
			outcome += " over"
		}
		if outcome != "" {
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%d\t%d\t%d\n",
				st.Frame, st.Shots, strings.TrimSpace(outcome), res.Popped, res.Dropped, st.Score, st.Count())
		}
		return true
	})
	if err != nil {
		return err
	}
	return w.Flush()
}

func benchPolicy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s on %s, %d seeds from %d\n\n", cfg.Policy, cfg.Mode, runs, cfg.Seed)

	start := time.Now()
	results, err := exp.RunEnsemble(cmd.Context(), runs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	frames := 0
	scores := make([]float64, len(results))
	for i, r := range results {
		frames += r.Frames
		scores[i] = float64(r.Score())
	}
	sum := sim.Summarize(results)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUNS\tMEAN\tBEST\tWORST\tCLEARED\tFRAMES\tTIME\tFRAMES/SEC")
	fmt.Fprintf(w, "%d\t%.1f\t%d\t%d\t%d\t%d\t%v\t%.0f\n",
		sum.Runs, sum.Mean, sum.Best, sum.Worst, sum.Cleared, frames, elapsed, float64(frames)/elapsed.Seconds())
	if err := w.Flush(); err != nil {
		return err
	}

	if len(scores) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(scores,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("score per seed"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tMODE\tPOLICY\tSEED\tFRAMES\tSCORE\tTIME")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			p,
			run.Mode,
			run.Policy,
			run.Seed,
			run.Frames,
			run.Score,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s  policy: %s\n", meta.Mode, meta.Policy)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) int
	}{
		{"score per shot", func(s sim.Sample) int { return s.Score }},
		{"bubbles on the board", func(s sim.Sample) int { return s.Bubbles }},
	}
	if meta.Mode == string(game.ModeFree) {
		series = append(series, struct {
			caption string
			value   func(sim.Sample) int
		}{"tries left", func(s sim.Sample) int { return s.Tries }})
	}

	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = float64(ser.value(s))
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption),
		))
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	if outPath != "" {
		return storage.WriteExportFile(outPath, data)
	}
	return storage.EncodeJSON(os.Stdout, data)
}

func svgBoard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	svg := export.FieldToSVG(&result.Final, exp.Rules())
	if outPath == "" {
		fmt.Println(svg)
	} else if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}

	if curveOut != "" {
		curve := export.ScoreToSVG(result.Samples, 640, 240, "#00ff88")
		if curve == "" {
			logger.Warn("not enough samples for a score curve", "samples", len(result.Samples))
			return nil
		}
		if err := os.WriteFile(curveOut, []byte(curve), 0644); err != nil {
			return err
		}
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := automation.NewRunner(experiment.NewRegistry(), st)
	runner.SetLogger(logger)

	outcomes, err := runner.Run(cmd.Context(), sc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSCORE\tFRAMES\tRUN")
	for i, o := range outcomes {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", i+1, o.Step.Name, o.Result.Score(), o.Result.Frames, o.RunID)
	}
	return w.Flush()
}

func tunePolicy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	param := "jitter"
	if cfg.Policy == "random" {
		param = "spread"
	}

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		for k, v := range params {
			c.PolicyParams[k] = v
		}
		exp, err := experiment.New(c, registry)
		if err != nil {
			return nil, err
		}
		exp.SetLogger(logger)
		return exp, nil
	}

	gs := optim.NewGridSearch([]string{param}, [][]float64{grid})
	gs.Trials = trials

	logger.Info("tuning", "policy", cfg.Policy, "param", param, "values", len(grid), "trials", trials)
	best, value, err := gs.Search(cmd.Context(), build, metric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.4f\n", param, best[param])
	fmt.Printf("mean %s: %.4f\n", metric, value)
	return nil
}

func sweepPolicy(cmd *cobra.Command, args []string) error {
	param := sweepParam
	if param == "" {
		param = "jitter"
		if policy == "random" {
			param = "spread"
		}
	}

	runner := automation.NewRunner(experiment.NewRegistry(), nil)
	runner.SetLogger(logger)

	results, err := runner.Sweep(cmd.Context(), &automation.ParameterSweep{
		Preset:    sweepPreset,
		Policy:    policy,
		ParamName: param,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Trials:    trials,
		Frames:    maxFrames,
		Seed:      sweepSeed,
	})
	if err != nil {
		return err
	}

	means := make([]float64, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN\tBEST\tWORST\tCLEARED\n", strings.ToUpper(param))
	for i, r := range results {
		means[i] = r.Summary.Mean
		fmt.Fprintf(w, "%.3f\t%.1f\t%d\t%d\t%d/%d\n",
			r.ParamValue, r.Summary.Mean, r.Summary.Best, r.Summary.Worst, r.Summary.Cleared, r.Summary.Runs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(means,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("mean score per "+param),
	))
	return nil
}
