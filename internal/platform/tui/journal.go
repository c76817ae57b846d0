package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-crossing/internal/storage"
)

// Journal viewer layout constants
const (
	maxJournalRows = 200 // Max rounds to load
	tableChrome    = 8   // Rows taken by title, summary, borders and help
)

// JournalKeyMap defines the key bindings for the journal viewer.
type JournalKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Refresh, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "newest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "oldest"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing the round journal.
type JournalModel struct {
	store    *storage.Store
	rounds   []storage.RoundEntry
	summary  storage.Summary
	loadErr  error
	wide     bool // seed column shown
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a new journal viewer.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	m := JournalModel{
		store:  store,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Session", Width: 16},
		{Title: "Round", Width: 5},
		{Title: "Outcome", Width: 9},
		{Title: "Layout", Width: 11},
		{Title: "Time", Width: 7},
		{Title: "Seed", Width: 20},
	}

	// Narrow terminals lose the seed column first.
	m.wide = m.width <= 0 || m.width >= 100
	if !m.wide {
		columns = columns[:len(columns)-1]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-tableChrome)),
	)

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

// load reads the newest rounds and the summary from the store.
func (m *JournalModel) load() {
	m.rounds, m.loadErr = nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	rounds, err := m.store.RecentRounds(maxJournalRows)
	if err != nil {
		m.loadErr = err
	} else {
		m.rounds = rounds
	}
	if sum, err := m.store.Summarize(); err == nil {
		m.summary = sum
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded rounds.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		row := table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			truncate(r.Session, 16),
			fmt.Sprintf("%d", r.Round),
			r.Outcome,
			r.Layout,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
		}
		if m.wide {
			row = append(row, fmt.Sprintf("%d", r.Seed))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal viewer.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal viewer.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("ROUND JOURNAL"))
	b.WriteString("\n")

	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(summaryStyle.Render(fmt.Sprintf(
		"%d rounds, %d goals, %d collisions, %d sessions",
		m.summary.Rounds, m.summary.Goals, m.summary.Collisions, m.summary.Sessions,
	)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the journal:\n" + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay a game to fill the journal!")
	}
	return m.table.View()
}

// FormatJournal renders entries as plain aligned text.
func FormatJournal(entries []storage.RoundEntry, sum storage.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rounds, %d goals, %d collisions, %d sessions\n",
		sum.Rounds, sum.Goals, sum.Collisions, sum.Sessions)
	if len(entries) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "%-12s  %-16s  %5s  %-9s  %-11s  %7s  %s\n",
		"WHEN", "SESSION", "ROUND", "OUTCOME", "LAYOUT", "TIME", "SEED")
	for _, r := range entries {
		fmt.Fprintf(&b, "%-12s  %-16s  %5d  %-9s  %-11s  %6.1fs  %d\n",
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			truncate(r.Session, 16),
			r.Round,
			r.Outcome,
			r.Layout,
			r.Duration.Seconds(),
			r.Seed,
		)
	}
	return b.String()
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "."
}

// RunJournal runs the journal viewer.
func RunJournal(store *storage.Store, width, height int) error {
	model := NewJournalModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
