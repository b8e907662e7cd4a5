package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/framelife/internal/platform/tui"
	"github.com/vovakirdan/framelife/internal/storage"
)

var (
	flagFit      bool
	flagNoRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation in the terminal",
	Long: `Start an interactive simulation. The board is seeded with random
patterns from the catalog and advanced at the configured tick rate.

Controls:
  Space/P       - Pause / resume
  N             - Step one generation (pauses)
  R             - Reseed with a new random layout
  C             - Clear the board
  S             - Save a BMP snapshot
  +/-           - Faster / slower
  Arrows/hjkl   - Move the edit cursor (visible while paused)
  Enter/T       - Toggle the cell under the cursor
  ?             - Full help
  Q/Esc/Ctrl+C  - Quit

Examples:
  framelife run
  framelife run --seed 42 --fps 30
  framelife run --fit
  framelife run --config ./my-framelife.yaml`,
	Run: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagFit, "fit", false, "Size the board to the terminal instead of the config grid")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run in the history database")
}

func runRun(cmd *cobra.Command, _ []string) {
	logger := newLogger("framelife")
	cfg := loadConfig(cmd, logger)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	gridW, gridH := cfg.Grid.Width, cfg.Grid.Height
	if flagFit {
		gridW, gridH = tui.SessionGrid(width, height)
	}

	sim, err := buildSimulation(cfg, gridW, gridH)
	if err != nil {
		fail("%v", err)
	}
	opts, err := modelOptions(cfg, logger)
	if err != nil {
		fail("%v", err)
	}
	opts.Runtime.ScreenW = width
	opts.Runtime.ScreenH = height
	opts.Source = "run"

	// Open history storage
	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(cfg.Storage.DB)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
			// Continue without storage - simulation still works
			store = nil
		}
	}

	runErr := tui.Run(sim, store, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running simulation: %v", runErr)
	}
}
