// framelife runs Conway's Game of Life on a pixel framebuffer, in the
// terminal, headless to bitmap files, or over SSH.
//
// Usage:
//
//	framelife run                 - Interactive simulation in the terminal
//	framelife render              - Headless run writing BMP snapshots
//	framelife draw <scene.yaml>   - Rasterize a scene to a BMP file
//	framelife patterns [name]     - List or show catalog patterns
//	framelife serve               - Start SSH server, one simulation per session
//	framelife history             - List recorded runs
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.framelife, ./configs, embedded)
//	--fps <rate>        - Generations per second
//	--seed <value>      - RNG seed for pattern placement (0 = time based)
//	--db <path>         - Run history database (default: ~/.framelife/history.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "framelife",
	Short: "framelife - Conway's Game of Life on a pixel framebuffer",
	Long: `framelife simulates Conway's Game of Life on a bounded grid of pixels.
Live cells are painted into a framebuffer that can be shown in the terminal,
written out as 24-bit BMP files, or served to SSH clients.

Available commands:
  run       - Interactive simulation in the terminal
  render    - Headless simulation writing bitmap snapshots
  draw      - Rasterize a YAML scene (lines, polygons) to a bitmap
  patterns  - List the pattern catalog
  serve     - Start SSH server
  history   - Browse recorded runs

Examples:
  framelife run --seed 42
  framelife render --generations 200 --every 20 --out ./frames
  framelife draw scene.yaml -o scene.bmp
  framelife serve --ssh :2222
  framelife history --tui`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Generations per second (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
