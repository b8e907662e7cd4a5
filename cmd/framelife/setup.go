package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/framelife/internal/config"
	"github.com/vovakirdan/framelife/internal/life"
	"github.com/vovakirdan/framelife/internal/patterns"
	"github.com/vovakirdan/framelife/internal/platform/tui"
)

// fail prints an error and exits, the way every command reports fatal errors.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the stderr logger for the --log-level flag.
func newLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// loadConfig loads the config file and applies global flag overrides.
// Extra pattern files named in the config are added to the catalog.
func loadConfig(cmd *cobra.Command, logger *log.Logger) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Simulation.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DB = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}

	if dir := cfg.Simulation.PatternDir; dir != "" {
		path, err := config.ExpandHome(dir)
		if err != nil {
			fail("%v", err)
		}
		n, err := patterns.RegisterDir(path)
		if err != nil {
			fail("loading patterns: %v", err)
		}
		logger.Debug("patterns loaded", "dir", path, "count", n)
	}
	return cfg
}

// workers resolves the configured band count, 0 meaning one per CPU.
func workers(cfg config.Config) int {
	if cfg.Simulation.Workers > 0 {
		return cfg.Simulation.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// buildSimulation creates an empty width x height simulation with the
// configured palette and engine.
func buildSimulation(cfg config.Config, width, height int) (*life.Simulation, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	return life.NewSimulation(width, height,
		life.Palette{Alive: pal.Alive, Dead: pal.Dead},
		life.NewEngine(workers(cfg)))
}

// modelOptions builds the TUI options shared by run and serve.
func modelOptions(cfg config.Config, logger *log.Logger) (tui.Options, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return tui.Options{}, err
	}
	set, err := patterns.Select(cfg.Simulation.Only)
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		Runtime:     cfg.Runtime(),
		Frame:       pal.Background,
		Patterns:    cfg.Simulation.Patterns,
		Set:         set,
		SnapshotDir: cfg.Snapshots.Dir,
		RowPadding:  cfg.Snapshots.RowPadding,
		Logger:      logger,
	}, nil
}
