// Package config provides YAML-based run configuration for framelife:
// grid size, palette, simulation pacing, snapshot output and history storage.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/framelife/internal/core"
)

// Config is the complete framelife configuration.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Colors     ColorsConfig     `yaml:"colors"`
	Simulation SimulationConfig `yaml:"simulation"`
	Snapshots  SnapshotsConfig  `yaml:"snapshots"`
	Storage    StorageConfig    `yaml:"storage"`
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ColorsConfig holds hex colors ("#RRGGBB", "RRGGBB" or "0xRRGGBB").
type ColorsConfig struct {
	Background string `yaml:"background"` // Frame and status bar
	Alive      string `yaml:"alive"`
	Dead       string `yaml:"dead"`
}

// SimulationConfig controls pacing and seeding.
type SimulationConfig struct {
	TickRate       int      `yaml:"tick_rate"`       // Generations per second
	Workers        int      `yaml:"workers"`         // Row bands per step, 0 = one per CPU
	Seed           int64    `yaml:"seed"`            // 0 = time based
	Patterns       int      `yaml:"patterns"`        // Random shapes placed on seed
	Only           []string `yaml:"only"`            // Restrict seeding to these names
	MaxGenerations int      `yaml:"max_generations"` // Headless run length, 0 = until interrupted
	PatternDir     string   `yaml:"pattern_dir"`     // Extra pattern files, optional
}

// SnapshotsConfig controls bitmap snapshots written by headless runs.
type SnapshotsConfig struct {
	Dir        string `yaml:"dir"`
	Every      int    `yaml:"every"` // Generations between snapshots, 0 = final frame only
	RowPadding bool   `yaml:"row_padding"`
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// Palette is the parsed form of ColorsConfig.
type Palette struct {
	Background core.Color
	Alive      core.Color
	Dead       core.Color
}

// Palette parses the configured colors.
func (c Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Background, err = core.ParseHex(c.Colors.Background); err != nil {
		return p, fmt.Errorf("config: colors.background: %w", err)
	}
	if p.Alive, err = core.ParseHex(c.Colors.Alive); err != nil {
		return p, fmt.Errorf("config: colors.alive: %w", err)
	}
	if p.Dead, err = core.ParseHex(c.Colors.Dead); err != nil {
		return p, fmt.Errorf("config: colors.dead: %w", err)
	}
	return p, nil
}

// Validate checks the configuration for values no command can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("config: simulation.tick_rate must be positive, got %d", c.Simulation.TickRate))
	}
	if c.Simulation.Workers < 0 {
		errs = append(errs, fmt.Errorf("config: simulation.workers must not be negative, got %d", c.Simulation.Workers))
	}
	if c.Simulation.Patterns < 0 {
		errs = append(errs, fmt.Errorf("config: simulation.patterns must not be negative, got %d", c.Simulation.Patterns))
	}
	if c.Simulation.MaxGenerations < 0 {
		errs = append(errs, fmt.Errorf("config: simulation.max_generations must not be negative, got %d", c.Simulation.MaxGenerations))
	}
	if c.Snapshots.Every < 0 {
		errs = append(errs, fmt.Errorf("config: snapshots.every must not be negative, got %d", c.Snapshots.Every))
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Runtime derives the settings the platform layer passes around.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = c.Simulation.TickRate
	rc.Seed = c.Simulation.Seed
	return rc
}
