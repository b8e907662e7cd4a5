package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/framelife/internal/storage"
)

// History layout constants
const (
	minWidthForDetail = 100 // Minimum width to show the detail panel
	detailWidth       = 34  // Width of the detail panel
	maxRuns           = 200 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Delete  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Delete, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	store      *storage.Store
	runs       []storage.Run
	snapshots  []storage.Snapshot // Snapshots of the selected run
	stats      *storage.Stats
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	err        error
	quitting   bool
	showDetail bool
}

// NewHistoryModel creates a new history model and loads the recent runs.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:      store,
		keys:       DefaultHistoryKeyMap(),
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Source", Width: 7},
		{Title: "Seed", Width: 20},
		{Title: "Size", Width: 9},
		{Title: "Gens", Width: 7},
		{Title: "Pop", Width: 6},
		{Title: "Date", Width: 12},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showDetail {
		tableWidth -= detailWidth + 3 // Panel + border + gap
	}
	// Shrink the seed column first when space is short
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if over := used - tableWidth; over > 0 {
		columns[2].Width = max(columns[2].Width-over, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and totals from the store.
func (m *HistoryModel) load() {
	m.err = nil
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	ctx := context.Background()
	runs, err := m.store.RecentRuns(ctx, maxRuns)
	if err != nil {
		m.err = err
		m.runs = nil
	} else {
		m.runs = runs
	}
	if stats, err := m.store.GetStats(ctx); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
	m.loadSnapshots()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		gens := fmt.Sprintf("%d", r.Generations)
		if r.FinishedAt.IsZero() {
			gens = "-"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			r.Source,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			gens,
			fmt.Sprintf("%d", r.Population),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// loadSnapshots fetches the snapshot list of the selected run.
func (m *HistoryModel) loadSnapshots() {
	m.snapshots = nil
	run, ok := m.Selected()
	if !ok || m.store == nil {
		return
	}
	snaps, err := m.store.Snapshots(context.Background(), run.ID)
	if err != nil {
		m.err = err
		return
	}
	m.snapshots = snaps
}

// Selected returns the run under the table cursor.
func (m HistoryModel) Selected() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run, ok := m.Selected(); ok && m.store != nil {
				if err := m.store.DeleteRun(context.Background(), run.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			m.loadSnapshots()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if m.stats != nil && m.stats.Runs > 0 {
		title = fmt.Sprintf("RUN HISTORY - %d runs, %d generations", m.stats.Runs, m.stats.TotalGenerations)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showDetail {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", m.renderDetail()))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("error: " + m.err.Error()))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderDetail renders the panel describing the selected run.
func (m HistoryModel) renderDetail() string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(detailWidth).
		Padding(0, 1)

	run, ok := m.Selected()
	if !ok {
		return panelStyle.Render("No run selected")
	}

	var d strings.Builder
	d.WriteString(lipgloss.NewStyle().Bold(true).Render("Run " + shortID(run.ID)))
	d.WriteString("\n")
	d.WriteString(strings.Repeat("-", detailWidth-4))
	d.WriteString("\n")
	fmt.Fprintf(&d, "source    %s\n", run.Source)
	fmt.Fprintf(&d, "seed      %d\n", run.Seed)
	fmt.Fprintf(&d, "grid      %dx%d\n", run.Width, run.Height)
	fmt.Fprintf(&d, "patterns  %d\n", run.Patterns)
	fmt.Fprintf(&d, "started   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.FinishedAt.IsZero() {
		d.WriteString("finished  -\n")
	} else {
		fmt.Fprintf(&d, "finished  %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&d, "\nSnapshots (%d)\n", len(m.snapshots))
	for i, s := range m.snapshots {
		if i == 8 {
			fmt.Fprintf(&d, "  ... %d more\n", len(m.snapshots)-i)
			break
		}
		fmt.Fprintf(&d, "  gen %-6d pop %-5d %s\n", s.Generation, s.Population, humanSize(s.Size))
	}
	return panelStyle.Render(strings.TrimRight(d.String(), "\n"))
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nStart one with `framelife run` or `framelife render --record`.")
	}

	return m.table.View()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// RunHistory runs the history browser until the user quits.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
