package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/config"
	"github.com/san-kum/bubblepop/internal/experiment"
	"github.com/san-kum/bubblepop/internal/gui"
	"github.com/san-kum/bubblepop/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	mode       string
	seed       int64
	policy     string
	spread     float64
	jitter     float64
	maxFrames  int
	frameRate  int

	runs     int
	outPath  string
	curveOut string
	metric   string
	grid     []float64
	trials   int

	sweepPreset string
	sweepSeed   int64
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "bubblepop"})

// main registers the commands and starts the terminal game when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "bubblepop",
		Short: "bubble shooter with cluster matching",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: playTUI,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bubblepop", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addGameFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal",
		RunE:  playTUI,
	}
	addGameFlags(playCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "watch a policy play in the terminal",
		RunE:  watchTUI,
	}
	addGameFlags(watchCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "play in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			rules, err := cfg.Rules()
			if err != nil {
				return err
			}
			return gui.Run(rules, cfg.Seed, cfg.FPS)
		},
	}
	addGameFlags(guiCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "autoplay one game headless and store it",
		RunE:  runGame,
	}
	addGameFlags(runCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "autoplay many seeds in parallel",
		RunE:  benchPolicy,
	}
	addGameFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 16, "number of seeds")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "autoplay one game and print every settled shot",
		RunE:  traceGame,
	}
	addGameFlags(traceCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the score of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "autoplay one game and draw the final board as SVG",
		RunE:  svgBoard,
	}
	addGameFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().StringVar(&curveOut, "curve", "", "also write the score curve to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %s\n", name, p.Mode)
			}
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search a policy parameter",
		RunE:  tunePolicy,
	}
	addGameFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metric, "metric", "score", "metric to maximise")
	tuneCmd.Flags().Float64SliceVar(&grid, "values", []float64{0, 0.05, 0.1, 0.2, 0.4}, "parameter values to try")
	tuneCmd.Flags().IntVar(&trials, "trials", 4, "seeds per value")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "score a policy over a range of one parameter",
		RunE:  sweepPolicy,
	}
	sf := sweepCmd.Flags()
	sf.StringVar(&sweepPreset, "preset", "classic", "preset to play")
	sf.StringVar(&policy, "policy", "greedy", "autoplay policy")
	sf.Int64Var(&sweepSeed, "seed", 1, "first seed of every step")
	sf.IntVar(&maxFrames, "frames", config.DefaultMaxFrames, "frame cap per game")
	sf.StringVar(&sweepParam, "param", "", "policy parameter (default jitter, spread for random)")
	sf.Float64Var(&sweepMin, "min", 0, "first parameter value")
	sf.Float64Var(&sweepMax, "max", 0.4, "last parameter value")
	sf.IntVar(&sweepSteps, "steps", 5, "number of values")
	sf.IntVar(&trials, "trials", 4, "seeds per value")

	rootCmd.AddCommand(playCmd, watchCmd, guiCmd, runCmd, traceCmd, benchCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, svgCmd, presetsCmd, scenarioCmd, tuneCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGameFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&mode, "mode", "", "board layout: free or grid")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	f.StringVar(&policy, "policy", "greedy", "autoplay policy")
	f.Float64Var(&spread, "spread", 0.3, "random policy aim spread")
	f.Float64Var(&jitter, "jitter", 0, "greedy policy aim jitter")
	f.IntVar(&maxFrames, "frames", config.DefaultMaxFrames, "frame cap for headless games")
	f.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
}

// resolveConfig layers the preset (or mode defaults), then the config file,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case preset != "":
		cfg, err = config.Preset(preset)
	case mode != "":
		cfg, err = config.ForMode(mode)
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("frames") {
		cfg.MaxFrames = maxFrames
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if cfg.PolicyParams == nil {
		cfg.PolicyParams = make(map[string]float64)
	}
	if _, ok := cfg.PolicyParams["spread"]; !ok || flags.Changed("spread") {
		cfg.PolicyParams["spread"] = spread
	}
	if _, ok := cfg.PolicyParams["jitter"]; !ok || flags.Changed("jitter") {
		cfg.PolicyParams["jitter"] = jitter
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "mode", cfg.Mode, "seed", cfg.Seed, "policy", cfg.Policy)
	return cfg, nil
}

func playTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	return tui.RunInteractive(rules, cfg.Seed, cfg.FPS)
}

func watchTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	aimer, err := experiment.NewRegistry().GetPolicy(cfg.Policy, cfg.PolicyParams, cfg.Seed)
	if err != nil {
		return err
	}
	return tui.RunWatch(rules, cfg.Seed, cfg.FPS, aimer)
}
