package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/bubblepop/internal/game"
)

var Presets = map[string]*Config{
	"classic": FromRules(game.FreeRules()),
	"frenzy": func() *Config {
		c := FromRules(game.FreeRules())
		c.Board.InitialBubbles = 14
		c.Board.Tries = 5
		c.Board.Colors = []string{"red", "green", "blue"}
		return c
	}(),
	"grid": FromRules(game.GridRules()),
	"rainbow": func() *Config {
		c := FromRules(game.GridRules())
		c.Cluster.Wildcard = true
		c.Cluster.WildcardSize = 3
		c.Cluster.WildcardChance = 0.1
		return c
	}(),
	"tall": func() *Config {
		c := FromRules(game.GridRules())
		c.Board.Rows = 16
		c.Board.FilledRows = 8
		c.Board.Height = 800
		return c
	}(),
}

// GetPreset returns a copy of a named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// Preset is GetPreset with an error naming the available presets.
func Preset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
