package config

import (
	_ "embed"
)

//go:embed defaults/framelife.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, matching defaults/framelife.yaml.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  100,
			Height: 100,
		},
		Colors: ColorsConfig{
			Background: "#333355",
			Alive:      "#FFFFFF",
			Dead:       "#000000",
		},
		Simulation: SimulationConfig{
			TickRate:       10, // 100ms per generation
			Workers:        0,
			Seed:           0,
			Patterns:       10,
			MaxGenerations: 0,
		},
		Snapshots: SnapshotsConfig{
			Dir:        "snapshots",
			Every:      10,
			RowPadding: false,
		},
		Storage: StorageConfig{
			DB: "~/.framelife/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
