package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framelife/internal/bitmap"
	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/life"
	"github.com/vovakirdan/framelife/internal/patterns"
	"github.com/vovakirdan/framelife/internal/storage"
)

// Tick rate limits for the speed keys.
const (
	minTickRate = 1
	maxTickRate = 60
)

// Options configures a simulation model.
type Options struct {
	Runtime     core.RuntimeConfig
	Frame       core.Color         // Status bar background
	Patterns    int                // Shapes placed on each seed
	Set         []patterns.Pattern // Shapes to draw from, empty = whole catalog
	SnapshotDir string             // Where the snapshot key writes bitmaps
	RowPadding  bool               // Pad snapshot rows to 4 bytes
	Source      string             // Recorded in run history
	Renderer    *lipgloss.Renderer // Per-session renderer, nil = default
	Logger      *log.Logger        // Optional
}

// Model is the Bubble Tea model for running a simulation.
type Model struct {
	sim      *life.Simulation
	store    *storage.Store
	runID    string
	opts     Options
	keys     KeyMap
	help     help.Model
	tickRate int
	paused   bool
	cursor   core.Point
	width    int
	height   int
	status   string
	quitting bool
}

// NewModel creates a new Bubble Tea model around sim and seeds it.
// If store is non-nil the run is recorded in the history database.
func NewModel(sim *life.Simulation, store *storage.Store, opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Source == "" {
		opts.Source = "run"
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		sim:      sim,
		store:    store,
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     h,
		tickRate: opts.Runtime.TickRate,
		width:    opts.Runtime.ScreenW,
		height:   opts.Runtime.ScreenH,
		cursor:   core.P(sim.Board().Width()/2, sim.Board().Height()/2),
	}
	m.reseed(opts.Runtime.Seed)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.finish()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.status = "paused"
		} else {
			m.status = ""
		}

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.step()

	case key.Matches(msg, m.keys.Reseed):
		m.reseed(time.Now().UnixNano())

	case key.Matches(msg, m.keys.Clear):
		m.sim.Clear()
		m.status = "cleared"

	case key.Matches(msg, m.keys.Snapshot):
		m.snapshot()

	case key.Matches(msg, m.keys.Faster):
		m.tickRate = min(m.tickRate*2, maxTickRate)
		m.status = fmt.Sprintf("%d gen/s", m.tickRate)

	case key.Matches(msg, m.keys.Slower):
		m.tickRate = max(m.tickRate/2, minTickRate)
		m.status = fmt.Sprintf("%d gen/s", m.tickRate)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(msg, m.keys.Toggle):
		m.sim.Toggle(m.cursor.X, m.cursor.Y)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances the simulation unless paused and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.step()
	}
	return m, tickCmd(m.tickRate)
}

func (m *Model) step() {
	if err := m.sim.Tick(context.Background()); err != nil {
		m.status = "step failed: " + err.Error()
	}
}

func (m *Model) moveCursor(dx, dy int) {
	b := m.sim.Board()
	m.cursor.X = core.Clamp(m.cursor.X+dx, 0, b.Width()-1)
	m.cursor.Y = core.Clamp(m.cursor.Y+dy, 0, b.Height()-1)
}

// reseed scatters a fresh set of patterns and starts a new history run.
func (m *Model) reseed(seed int64) {
	m.finish()
	m.opts.Runtime.Seed = seed
	placed := m.sim.Seed(seed, m.opts.Patterns, m.opts.Set)
	m.status = fmt.Sprintf("seed %d, %d patterns", seed, len(placed))

	if m.store == nil {
		return
	}
	b := m.sim.Board()
	id, err := m.store.CreateRun(context.Background(), storage.Run{
		Source:   m.opts.Source,
		Seed:     seed,
		Width:    b.Width(),
		Height:   b.Height(),
		Patterns: len(placed),
	})
	if err != nil {
		m.logWarn("could not record run", "error", err)
		return
	}
	m.runID = id
}

// finish closes the current history run, if any.
func (m *Model) finish() {
	if m.store == nil || m.runID == "" {
		return
	}
	err := m.store.FinishRun(context.Background(), m.runID, int(m.sim.Generation()), m.sim.Population())
	if err != nil {
		m.logWarn("could not finish run", "run", m.runID, "error", err)
	}
	m.runID = ""
}

// snapshot writes the current framebuffer as a bitmap and records it.
func (m *Model) snapshot() {
	fb := m.sim.Framebuffer()
	var opts []bitmap.Option
	if m.opts.RowPadding {
		opts = append(opts, bitmap.WithRowPadding())
	}
	data := bitmap.Encode(fb, opts...)

	if m.opts.SnapshotDir != "" {
		if err := os.MkdirAll(m.opts.SnapshotDir, 0o755); err != nil {
			m.status = "snapshot failed: " + err.Error()
			return
		}
		name := fmt.Sprintf("framelife_%s_gen%06d.bmp", time.Now().Format("20060102_150405"), m.sim.Generation())
		path := filepath.Join(m.opts.SnapshotDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			m.status = "snapshot failed: " + err.Error()
			return
		}
		m.status = "saved " + path
	}

	if m.store != nil && m.runID != "" {
		_, err := m.store.SaveSnapshot(context.Background(), m.runID, int(m.sim.Generation()), m.sim.Population(), data)
		if err != nil {
			m.logWarn("could not store snapshot", "error", err)
		} else if m.opts.SnapshotDir == "" {
			m.status = fmt.Sprintf("snapshot stored at generation %d", m.sim.Generation())
		}
	}
}

func (m Model) logWarn(msg string, keyvals ...any) {
	if m.opts.Logger != nil {
		m.opts.Logger.Warn(msg, keyvals...)
	}
}

// Simulation returns the simulation driven by the model.
func (m Model) Simulation() *life.Simulation {
	return m.sim
}

// Paused reports whether automatic stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// TickRate returns the current generations per second.
func (m Model) TickRate() int {
	return m.tickRate
}

// Cursor returns the edit cursor position in board coordinates.
func (m Model) Cursor() core.Point {
	return m.cursor
}

// RunID returns the history run being recorded, or "".
func (m Model) RunID() string {
	return m.runID
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	r := m.opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	statusStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color(hexString(m.opts.Frame))).
		Width(max(m.width, 1)).
		MaxHeight(1)
	helpStyle := r.NewStyle().
		Foreground(lipgloss.Color("241"))

	helpView := m.help.View(m.keys)
	reserved := 1 + lipgloss.Height(helpView)
	rows := max(m.height-reserved, 1)

	fb := m.sim.Framebuffer()
	view := Viewport(fb.Width(), fb.Height(), m.width, rows, m.cursor)
	var cursor *core.Point
	if m.paused {
		c := m.cursor
		cursor = &c
	}

	var b strings.Builder
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(RenderPixels(r, fb, view, cursor))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpView))
	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{
		"framelife",
		fmt.Sprintf("gen %d", m.sim.Generation()),
		fmt.Sprintf("pop %d", m.sim.Population()),
		fmt.Sprintf("%d gen/s", m.tickRate),
	}
	if m.paused {
		parts = append(parts, fmt.Sprintf("paused @ %s", m.cursor))
	}
	if m.status != "" && m.status != "paused" {
		parts = append(parts, m.status)
	}
	return " " + strings.Join(parts, "  |  ")
}

// Run starts the Bubble Tea program with a model for sim.
func Run(sim *life.Simulation, store *storage.Store, opts Options) error {
	model := NewModel(sim, store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.finish()
	}
	return err
}
