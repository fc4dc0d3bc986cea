package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const (
	sidebarMinWidth = 80 // narrower terminals get a tab strip instead
	sidebarWidth    = 20
	runsPerLevel    = 100
	ticksPerSecond  = 60
)

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTabStyle    = sbActiveStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	sbPanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardKeyMap lists the scoreboard bindings shown in the help bar.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the bindings used by NewScoreboardModel.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next level")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev level")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab is one level filter. An empty levelID means every level.
type scoreTab struct {
	levelID string
	title   string
}

// ScoreboardModel shows the best runs, one level at a time.
type ScoreboardModel struct {
	gameID string
	store  *storage.Store
	tabs   []scoreTab
	tab    int
	runs   []storage.RunEntry
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	standalone bool // quit the program on back
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel builds the scoreboard with an "All levels" tab
// followed by one tab per catalog level.
func NewScoreboardModel(store *storage.Store, gameID string, catalog []levels.Level, width, height int) ScoreboardModel {
	tabs := []scoreTab{{title: "All levels"}}
	for _, lvl := range catalog {
		title := lvl.Name
		if title == "" {
			title = lvl.ID
		}
		tabs = append(tabs, scoreTab{levelID: lvl.ID, title: title})
	}

	m := ScoreboardModel{
		gameID: gameID,
		store:  store,
		tabs:   tabs,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= sidebarMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Bones", Width: 6},
		{Title: "Stomps", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Level", Width: 10},
		{Title: "When", Width: 12},
	}

	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	for _, c := range columns {
		avail -= c.Width + 2
	}
	if avail > 0 {
		columns[5].Width += min(avail, 12)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)
	t.SetStyles(styles)
	return t
}

// reload fetches the current tab's runs. Without a store the board is empty.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(m.gameID, m.tabs[m.tab].levelID, runsPerLevel); err == nil {
			m.runs = runs
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Coins),
			fmt.Sprint(r.Stomps),
			formatTicks(r.Ticks),
			r.LevelID,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatTicks renders a run length as m:ss.
func formatTicks(ticks int) string {
	secs := ticks / ticksPerSecond
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// shorten cuts s to at most n runes, marking the cut with a dot.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES - " + m.tabs[m.tab].title
	body := sbPanelStyle.Render(m.runsView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	} else {
		body = centerText(m.tabStrip(), m.width) + "\n\n" + centerText(body, m.width)
	}

	return "\n" + centerText(sbTitleStyle.Render(title), m.width) + "\n\n" +
		body + "\n" +
		sbDimStyle.Render(m.help.View(m.keys))
}

func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	b.WriteString(strings.Repeat("─", sidebarWidth-4))
	for i, tab := range m.tabs {
		b.WriteString("\n")
		name := shorten(tab.title, sidebarWidth-6)
		if i == m.tab {
			b.WriteString(sbActiveStyle.Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
	}
	return sbPanelStyle.Width(sidebarWidth).Render(b.String())
}

// tabStrip lays the tabs out in one line, or just the current one between
// arrows when they do not fit.
func (m ScoreboardModel) tabStrip() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		name := shorten(tab.title, 10)
		if i == m.tab {
			parts[i] = sbTabStyle.Render(name)
		} else {
			parts[i] = sbDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.tabs[m.tab].title)
	}
	return line
}

func (m ScoreboardModel) runsView() string {
	if len(m.runs) == 0 {
		return sbDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to leave.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard as its own program.
func RunScoreboard(store *storage.Store, gameID string, catalog []levels.Level, width, height int) error {
	model := NewScoreboardModel(store, gameID, catalog, width, height)
	model.standalone = true
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
