package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerLines and footerLines are the rows around the scrolling content.
const (
	headerLines = 2
	footerLines = 3
)

// settingsChangedMsg reports a preference change made from the TUI. Every
// tab reloads after it.
type settingsChangedMsg struct {
	note string
	err  error
}

type tuiKeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Refresh    key.Binding
	NextPeriod key.Binding
	PrevPeriod key.Binding
	Help       key.Binding
	Quit       key.Binding

	// view holds the active tab's own bindings.
	view []key.Binding
}

func newTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Next:       key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextPeriod: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next period")),
		PrevPeriod: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev period")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	out := []key.Binding{k.Next}
	out = append(out, k.view...)
	return append(out, k.Help, k.Quit)
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Refresh},
		append([]key.Binding{k.NextPeriod, k.PrevPeriod}, k.view...),
		{k.Help, k.Quit},
	}
}

// appModel is the root bubbletea Model for the TUI: a strip of report tabs
// over a scrollable viewport.
type appModel struct {
	app      *App
	tabs     []View
	active   int
	keys     tuiKeyMap
	help     help.Model
	vp       viewport.Model
	width    int
	height   int
	note     string
	quitting bool
}

var scaleKey = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart scale"))

func newAppModel(a *App) appModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = contentViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return appModel{
		app: a,
		tabs: []View{
			newReportView(ViewDashboard, "Dashboard", a, loadDashboard),
			newReportView(ViewRoadmap, "Roadmap", a, loadRoadmap),
			newReportView(ViewChart, "Chart", a, loadChart, scaleKey),
			newReportView(ViewStats, "Stats", a, loadStats),
		},
		keys: newTUIKeyMap(),
		help: help.New(),
		vp:   vp,
	}
}

func (m *appModel) activeView() View {
	return m.tabs[m.active]
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, v := range m.tabs {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-headerLines-footerLines, 1)
		m.syncContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case reportLoadedMsg:
		for i, v := range m.tabs {
			if v.ID() != msg.id {
				continue
			}
			updated, _ := v.Update(msg)
			m.tabs[i] = updated.(View)
		}
		m.syncContent()
		return m, nil

	case settingsChangedMsg:
		if msg.err != nil {
			m.note = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.note = msg.note
		return m, m.reloadAll()
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.switchTab(m.active + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.switchTab(m.active - 1)
		return m, nil

	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= rune('0'+len(m.tabs)):
		m.switchTab(int(msg.Runes[0] - '1'))
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.note = ""
		return m, m.reloadAll()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeViewport()
		return m, nil

	case key.Matches(msg, m.keys.NextPeriod):
		return m, switchPeriod(m.app, 1)

	case key.Matches(msg, m.keys.PrevPeriod):
		return m, switchPeriod(m.app, -1)

	case m.activeView().ID() == ViewChart && key.Matches(msg, scaleKey):
		return m, cycleChartMode(m.app)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := m.activeView().View()
	if m.height > 0 {
		content = m.vp.View()
	}

	sections := []string{
		m.renderTabs(),
		content,
		m.renderSeparator(),
		m.help.View(m.helpKeys()),
	}
	if m.note != "" {
		sections = append(sections, m.note)
	}
	return strings.Join(sections, "\n")
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (m *appModel) switchTab(i int) {
	n := len(m.tabs)
	m.active = ((i % n) + n) % n
	m.syncContent()
	m.vp.GotoTop()
	m.resizeViewport()
}

// syncContent copies the active tab's rendering into the viewport.
func (m *appModel) syncContent() {
	m.vp.SetContent(m.activeView().View())
}

func (m *appModel) resizeViewport() {
	if m.height == 0 {
		return
	}
	extra := 0
	if m.help.ShowAll {
		for _, col := range m.helpKeys().FullHelp() {
			extra = max(extra, len(col)-1)
		}
	}
	m.vp.Height = max(m.height-headerLines-footerLines-extra, 1)
}

// helpKeys returns the global bindings plus the active tab's.
func (m *appModel) helpKeys() tuiKeyMap {
	keys := m.keys
	keys.view = m.activeView().ShortHelp()
	return keys
}

func (m *appModel) reloadAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for i, v := range m.tabs {
		updated, cmd := v.Update(reloadMsg{})
		m.tabs[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *appModel) renderTabs() string {
	active := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	parts := []string{formatter.StylePurple.Render("gradeflow")}
	for i, v := range m.tabs {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if i == m.active {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, "  ") + "\n" + m.renderSeparator()
}

func (m *appModel) renderSeparator() string {
	return formatter.Dim(strings.Repeat("─", max(m.width, 20)))
}

// contentViewportKeyMap limits scrolling to arrow, page and half-page keys so
// letters stay free for tab shortcuts.
func contentViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// ── commands ─────────────────────────────────────────────────────────────────

// nextChartMode cycles 20 -> 10 -> combined -> 20.
func nextChartMode(mode domain.ChartMode) domain.ChartMode {
	switch mode {
	case domain.ChartScale20:
		return domain.ChartScale10
	case domain.ChartScale10:
		return domain.ChartCombined
	default:
		return domain.ChartScale20
	}
}

// cycleChartMode saves the next chart scale as the preference.
func cycleChartMode(a *App) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		mode, err := a.Settings.ChartMode(ctx)
		if err != nil {
			return settingsChangedMsg{err: err}
		}
		next := nextChartMode(mode)
		if err := a.Settings.SetChartMode(ctx, next); err != nil {
			return settingsChangedMsg{err: err}
		}
		return settingsChangedMsg{note: "Chart scale: " + formatter.ModeLabel(next)}
	}
}

// switchPeriod activates the period step places away from the active one in
// start-date order, wrapping around.
func switchPeriod(a *App, step int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		periods, err := a.Periods.List(ctx)
		if err != nil {
			return settingsChangedMsg{err: err}
		}
		if len(periods) == 0 {
			return settingsChangedMsg{note: formatter.Dim("No periods yet.")}
		}
		active, err := a.Periods.Active(ctx)
		if err != nil {
			return settingsChangedMsg{err: err}
		}
		idx := 0
		for i, p := range periods {
			if p.ID == active.ID {
				idx = i
				break
			}
		}
		n := len(periods)
		target := periods[((idx+step)%n+n)%n]
		if err := a.Periods.SetActive(ctx, target.ID); err != nil {
			return settingsChangedMsg{err: err}
		}
		return settingsChangedMsg{note: "Active period: " + target.Name}
	}
}
