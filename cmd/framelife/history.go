package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/framelife/internal/platform/tui"
	"github.com/vovakirdan/framelife/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagExportOut    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded runs",
	Long: `List simulation runs recorded in the history database, newest first.

Examples:
  framelife history
  framelife history --limit 50
  framelife history --tui
  framelife history export 3f2a 120 -o gen120.bmp`,
	Run: runHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <run-id> <generation>",
	Short: "Write a stored snapshot to a BMP file",
	Long: `Export the snapshot taken at a generation of a recorded run. The run
may be given by any unique prefix of its ID.`,
	Args: cobra.ExactArgs(2),
	Run:  runHistoryExport,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs interactively")
	historyExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output BMP file (default: <run>_gen<generation>.bmp)")
	historyCmd.AddCommand(historyExportCmd)
}

func openHistory(cmd *cobra.Command) *storage.Store {
	logger := newLogger("framelife")
	cfg := loadConfig(cmd, logger)
	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		fail("%v", err)
	}
	return store
}

func runHistory(cmd *cobra.Command, _ []string) {
	store := openHistory(cmd)
	defer store.Close()

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			fail("running history browser: %v", err)
		}
		return
	}

	ctx := context.Background()
	runs, err := store.RecentRuns(ctx, flagHistoryLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Start one with: framelife run")
		return
	}

	stats, err := store.GetStats(ctx)
	if err == nil {
		fmt.Printf("%d runs, %d generations, peak population %d, %d snapshots\n\n",
			stats.Runs, stats.TotalGenerations, stats.MaxPopulation, stats.Snapshots)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tGRID\tSEED\tGENERATIONS\tPOPULATION\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%d\t%s\n",
			r.ID[:min(8, len(r.ID))], r.Source, r.Width, r.Height, r.Seed,
			r.Generations, r.Population, r.CreatedAt.Local().Format(time.DateTime))
	}
	w.Flush()
}

// resolveRun finds the single recent run whose ID starts with prefix.
func resolveRun(ctx context.Context, store *storage.Store, prefix string) (storage.Run, error) {
	r, err := store.RunByID(ctx, prefix)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, storage.ErrRunNotFound) {
		return storage.Run{}, err
	}

	runs, err := store.RecentRuns(ctx, 1000)
	if err != nil {
		return storage.Run{}, err
	}
	var match []storage.Run
	for _, r := range runs {
		if strings.HasPrefix(r.ID, prefix) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 0:
		return storage.Run{}, fmt.Errorf("%w: %s", storage.ErrRunNotFound, prefix)
	case 1:
		return match[0], nil
	default:
		return storage.Run{}, fmt.Errorf("run prefix %q is ambiguous (%d matches)", prefix, len(match))
	}
}

func runHistoryExport(cmd *cobra.Command, args []string) {
	generation, err := strconv.Atoi(args[1])
	if err != nil || generation < 0 {
		fail("invalid generation %q", args[1])
	}

	store := openHistory(cmd)
	defer store.Close()

	ctx := context.Background()
	run, err := resolveRun(ctx, store, args[0])
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	data, err := store.SnapshotBitmap(ctx, run.ID, generation)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	out := flagExportOut
	if out == "" {
		out = fmt.Sprintf("%s_gen%06d.bmp", run.ID[:min(8, len(run.ID))], generation)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
}
