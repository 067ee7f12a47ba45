package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/bubblepop/internal/cluster"
	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPolicy    = "greedy"
	DefaultMaxFrames = 20000
	DefaultFPS       = 60
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Mode         string             `yaml:"mode"`
	Seed         int64              `yaml:"seed"`
	Policy       string             `yaml:"policy"`
	PolicyParams map[string]float64 `yaml:"policy_params,omitempty"`
	MaxFrames    int                `yaml:"max_frames"`
	FPS          int                `yaml:"fps"`
	Board        BoardConfig        `yaml:"board"`
	Cluster      ClusterConfig      `yaml:"cluster"`
	Scoring      ScoringConfig      `yaml:"scoring"`
}

type BoardConfig struct {
	Width          float64  `yaml:"width"`
	Height         float64  `yaml:"height"`
	Radius         float64  `yaml:"radius"`
	Speed          float64  `yaml:"speed"`
	MoveStep       float64  `yaml:"move_step"`
	Colors         []string `yaml:"colors"`
	InitialBubbles int      `yaml:"initial_bubbles"`
	SpawnHeight    float64  `yaml:"spawn_height"`
	Tries          int      `yaml:"tries"`
	ExtraTryEvery  int      `yaml:"extra_try_every"`
	Rows           int      `yaml:"rows"`
	Cols           int      `yaml:"cols"`
	FilledRows     int      `yaml:"filled_rows"`
}

type ClusterConfig struct {
	MinSize        int     `yaml:"min_size"`
	Wildcard       bool    `yaml:"wildcard"`
	WildcardSize   int     `yaml:"wildcard_size"`
	WildcardChance float64 `yaml:"wildcard_chance"`
}

type ScoringConfig struct {
	PointsPerBubble int `yaml:"points_per_bubble"`
	BonusPerExtra   int `yaml:"bonus_per_extra"`
	DropPoints      int `yaml:"drop_points"`
}

// DefaultConfig is the free-floating board.
func DefaultConfig() *Config {
	return FromRules(game.FreeRules())
}

// ForMode returns the defaults of a board layout.
func ForMode(mode string) (*Config, error) {
	m, err := game.ParseMode(mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if m == game.ModeGrid {
		return FromRules(game.GridRules()), nil
	}
	return FromRules(game.FreeRules()), nil
}

// FromRules builds a config that reproduces r.
func FromRules(r game.Rules) *Config {
	colors := make([]string, len(r.Palette))
	for i, c := range r.Palette {
		colors[i] = string(c)
	}
	return &Config{
		Mode:      string(r.Mode),
		Policy:    DefaultPolicy,
		MaxFrames: DefaultMaxFrames,
		FPS:       DefaultFPS,
		Board: BoardConfig{
			Width:          r.Width,
			Height:         r.Height,
			Radius:         r.Radius,
			Speed:          r.Speed,
			MoveStep:       r.MoveStep,
			Colors:         colors,
			InitialBubbles: r.InitialBubbles,
			SpawnHeight:    r.SpawnHeight,
			Tries:          r.Tries,
			ExtraTryEvery:  r.ExtraTryEvery,
			Rows:           r.Rows,
			Cols:           r.Cols,
			FilledRows:     r.FilledRows,
		},
		Cluster: ClusterConfig{
			MinSize:        r.Cluster.MinSize,
			Wildcard:       r.Cluster.Wildcard,
			WildcardSize:   r.Cluster.WildcardSize,
			WildcardChance: r.WildcardChance,
		},
		Scoring: ScoringConfig{
			PointsPerBubble: r.PointsPerBubble,
			BonusPerExtra:   r.BonusPerExtra,
			DropPoints:      r.DropPoints,
		},
	}
}

// Load reads a YAML file on top of the defaults of the mode it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var head struct {
		Mode string `yaml:"mode"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Mode == "" {
		head.Mode = string(game.ModeFree)
	}
	cfg, err := ForMode(head.Mode)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a copy that shares no slices or maps with c.
func (c *Config) Clone() *Config {
	out := *c
	out.Board.Colors = append([]string(nil), c.Board.Colors...)
	if c.PolicyParams != nil {
		out.PolicyParams = make(map[string]float64, len(c.PolicyParams))
		for k, v := range c.PolicyParams {
			out.PolicyParams[k] = v
		}
	}
	return &out
}

// Rules converts the config into validated game rules.
func (c *Config) Rules() (game.Rules, error) {
	mode, err := game.ParseMode(c.Mode)
	if err != nil {
		return game.Rules{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	r := game.Rules{
		Mode:           mode,
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		Radius:         c.Board.Radius,
		Speed:          c.Board.Speed,
		MoveStep:       c.Board.MoveStep,
		Palette:        field.ParsePalette(c.Board.Colors),
		InitialBubbles: c.Board.InitialBubbles,
		SpawnHeight:    c.Board.SpawnHeight,
		Tries:          c.Board.Tries,
		ExtraTryEvery:  c.Board.ExtraTryEvery,
		Rows:           c.Board.Rows,
		Cols:           c.Board.Cols,
		FilledRows:     c.Board.FilledRows,
		Cluster: cluster.Rule{
			MinSize:      c.Cluster.MinSize,
			Wildcard:     c.Cluster.Wildcard,
			WildcardSize: c.Cluster.WildcardSize,
		},
		WildcardChance:  c.Cluster.WildcardChance,
		PointsPerBubble: c.Scoring.PointsPerBubble,
		BonusPerExtra:   c.Scoring.BonusPerExtra,
		DropPoints:      c.Scoring.DropPoints,
	}
	if err := r.Validate(); err != nil {
		return game.Rules{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

func (c *Config) Validate() error {
	if _, err := c.Rules(); err != nil {
		return err
	}
	switch {
	case c.MaxFrames <= 0:
		return fmt.Errorf("%w: max_frames must be positive, got %d", ErrInvalidConfig, c.MaxFrames)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	return nil
}
