package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/framelife/internal/bitmap"
	"github.com/vovakirdan/framelife/internal/life"
	"github.com/vovakirdan/framelife/internal/patterns"
	"github.com/vovakirdan/framelife/internal/storage"
)

var (
	flagGenerations int
	flagEvery       int
	flagOutDir      string
	flagPadded      bool
	flagRecord      bool
	flagFrom        string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run the simulation headless and write BMP snapshots",
	Long: `Advance the simulation without a terminal UI, writing a 24-bit BMP of
the framebuffer every --every generations and after the last one.
Ctrl+C stops the run early; the final frame is still written.

The board starts either from random catalog patterns or, with --from, from
the pure white pixels of an existing bitmap.

Examples:
  framelife render --generations 100 --every 10 --out ./frames
  framelife render --seed 7 --generations 500 --every 0 --record
  framelife render --from glider.bmp --generations 40 --padded`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&flagGenerations, "generations", "n", -1, "Generations to run (0 = until interrupted, default from config)")
	renderCmd.Flags().IntVar(&flagEvery, "every", -1, "Snapshot interval in generations (0 = final frame only, default from config)")
	renderCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "Snapshot directory (default from config)")
	renderCmd.Flags().BoolVar(&flagPadded, "padded", false, "Pad BMP rows to 4-byte boundaries")
	renderCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run and its snapshots in the history database")
	renderCmd.Flags().StringVar(&flagFrom, "from", "", "Start from the white pixels of this BMP file")
}

// headlessRun drives a simulation without a UI and writes snapshots.
type headlessRun struct {
	sim    *life.Simulation
	store  *storage.Store
	runID  string
	every  int
	outDir string
	opts   []bitmap.Option
	logger *log.Logger
}

// run advances up to generations steps (0 = until ctx is done), writing a
// snapshot at every interval and after the last step. It returns the number
// of generations completed. Cancellation is not an error.
func (h *headlessRun) run(ctx context.Context, generations int) (int, error) {
	gen := 0
	if h.every > 0 {
		if err := h.snapshot(ctx); err != nil {
			return gen, err
		}
	}

	for generations == 0 || gen < generations {
		if err := h.sim.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				h.logger.Info("interrupted", "generation", gen)
				break
			}
			return gen, err
		}
		gen++
		if h.every > 0 && gen%h.every == 0 {
			if err := h.snapshot(ctx); err != nil {
				return gen, err
			}
		}
	}

	if h.every == 0 || gen%h.every != 0 {
		if err := h.snapshot(ctx); err != nil {
			return gen, err
		}
	}
	return gen, nil
}

// snapshot writes the current frame to disk and, when recording, to the store.
// Cancellation of ctx is ignored so an interrupted run keeps its last frame.
func (h *headlessRun) snapshot(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	gen := h.sim.Generation()
	fb := h.sim.Framebuffer()

	if h.outDir != "" {
		path := filepath.Join(h.outDir, fmt.Sprintf("frame_%06d.bmp", gen))
		if err := bitmap.Save(path, fb, h.opts...); err != nil {
			return err
		}
		h.logger.Debug("snapshot written", "path", path, "population", h.sim.Population())
	}

	if h.store != nil && h.runID != "" {
		data := bitmap.Encode(fb, h.opts...)
		if _, err := h.store.SaveSnapshot(ctx, h.runID, int(gen), h.sim.Population(), data); err != nil {
			return err
		}
	}
	return nil
}

func runRender(cmd *cobra.Command, _ []string) {
	logger := newLogger("framelife")
	cfg := loadConfig(cmd, logger)

	generations := cfg.Simulation.MaxGenerations
	if flagGenerations >= 0 {
		generations = flagGenerations
	}
	every := cfg.Snapshots.Every
	if flagEvery >= 0 {
		every = flagEvery
	}
	outDir := cfg.Snapshots.Dir
	if flagOutDir != "" {
		outDir = flagOutDir
	}
	var opts []bitmap.Option
	if flagPadded || cfg.Snapshots.RowPadding {
		opts = append(opts, bitmap.WithRowPadding())
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fail("cannot create output directory: %v", err)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Build the starting board
	var sim *life.Simulation
	var err error
	placed := 0
	if flagFrom != "" {
		src, loadErr := bitmap.Load(flagFrom)
		if loadErr != nil {
			fail("%v", loadErr)
		}
		sim, err = buildSimulation(cfg, src.Width(), src.Height())
		if err != nil {
			fail("%v", err)
		}
		sim.LoadCanvas(src)
	} else {
		sim, err = buildSimulation(cfg, cfg.Grid.Width, cfg.Grid.Height)
		if err != nil {
			fail("%v", err)
		}
		set, selErr := patterns.Select(cfg.Simulation.Only)
		if selErr != nil {
			fail("%v", selErr)
		}
		placed = len(sim.Seed(seed, cfg.Simulation.Patterns, set))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &headlessRun{
		sim:    sim,
		every:  every,
		outDir: outDir,
		opts:   opts,
		logger: logger,
	}

	if flagRecord {
		store, openErr := storage.Open(cfg.Storage.DB)
		if openErr != nil {
			fail("%v", openErr)
		}
		defer store.Close()
		h.store = store

		b := sim.Board()
		h.runID, err = store.CreateRun(ctx, storage.Run{
			Source:   "render",
			Seed:     seed,
			Width:    b.Width(),
			Height:   b.Height(),
			Patterns: placed,
		})
		if err != nil {
			fail("%v", err)
		}
	}

	logger.Info("rendering",
		"grid", fmt.Sprintf("%dx%d", sim.Board().Width(), sim.Board().Height()),
		"seed", seed,
		"patterns", placed,
		"generations", generations,
		"every", every,
		"out", outDir,
	)

	start := time.Now()
	done, runErr := h.run(ctx, generations)

	if h.store != nil {
		if err := h.store.FinishRun(context.WithoutCancel(ctx), h.runID, done, sim.Population()); err != nil {
			logger.Warn("could not finish run", "error", err)
		}
	}
	if runErr != nil {
		fail("%v", runErr)
	}

	logger.Info("done",
		"generations", done,
		"population", sim.Population(),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"run", h.runID,
	)
}
