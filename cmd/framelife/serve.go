package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framelife/internal/life"
	"github.com/vovakirdan/framelife/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server",
	Long: `Start an SSH server. Every session gets its own simulation sized to the
client's terminal, with the same controls as 'framelife run'.

Examples:
  framelife serve
  framelife serve --ssh :2222
  framelife serve --host-key ./host_key --idle-timeout 10m

Connect with:
  ssh -p 23235 localhost`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server listen address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (default: ~/.framelife/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Close sessions idle for this long")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger("framelife-ssh")
	cfg := loadConfig(cmd, logger)

	base, err := modelOptions(cfg, logger)
	if err != nil {
		fail("%v", err)
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = flagIdleTimeout
	sshCfg.DBPath = cfg.Storage.DB
	sshCfg.Logger = logger
	sshCfg.NewSession = func(cols, rows int) (*life.Simulation, tui.Options, error) {
		w, h := tui.SessionGrid(cols, rows)
		sim, err := buildSimulation(cfg, w, h)
		if err != nil {
			return nil, tui.Options{}, err
		}
		// A zero seed gives each session its own layout
		return sim, base, nil
	}

	srv, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		fail("%v", err)
	}

	if err := srv.ListenAndServe(); err != nil {
		fail("%v", err)
	}
}
