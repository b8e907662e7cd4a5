package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [name]",
	Short: "List the pattern catalog",
	Long: `List every pattern the seeder can place, including any loaded from the
configured pattern_dir. With a name, print that pattern as a grid.

Examples:
  framelife patterns
  framelife patterns glider`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPatterns,
}

func runPatterns(cmd *cobra.Command, args []string) {
	logger := newLogger("framelife")
	loadConfig(cmd, logger)

	if len(args) == 1 {
		p, err := patterns.Get(args[0])
		if err != nil {
			fail("%v", err)
		}
		b := p.Bounds()
		fmt.Printf("%s (%dx%d, %d cells)\n\n", p.Title, b.W, b.H, len(p.Cells))
		fmt.Print(patternGrid(p))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tSIZE\tCELLS")
	for _, p := range patterns.List() {
		b := p.Bounds()
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\n", p.Name, p.Title, b.W, b.H, len(p.Cells))
	}
	w.Flush()
}

// patternGrid draws p with 'O' for live cells and '.' for dead ones.
func patternGrid(p patterns.Pattern) string {
	b := p.Bounds()
	g := core.NewRuneGrid(b.W, b.H, '.')
	g.Plot(p.Cells, 'O')
	return g.String()
}
