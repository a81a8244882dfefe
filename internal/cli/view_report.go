package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// reportLoadedMsg carries a rendered report for one tab.
type reportLoadedMsg struct {
	id      ViewID
	content string
	err     error
}

// reloadMsg asks every tab to load its report again.
type reloadMsg struct{}

// ── view ─────────────────────────────────────────────────────────────────────

// reportLoader renders one report from the services.
type reportLoader func(ctx context.Context, a *App) (string, error)

// reportView is a read-only tab showing one rendered report. Loading runs in
// a tea.Cmd so the UI stays responsive.
type reportView struct {
	id      ViewID
	title   string
	app     *App
	load    reportLoader
	help    []key.Binding
	content string
	loading bool
	err     error
}

func newReportView(id ViewID, title string, a *App, load reportLoader, help ...key.Binding) *reportView {
	return &reportView{id: id, title: title, app: a, load: load, help: help, loading: true}
}

func (v *reportView) ID() ViewID               { return v.id }
func (v *reportView) Title() string            { return v.title }
func (v *reportView) ShortHelp() []key.Binding { return v.help }

func (v *reportView) Init() tea.Cmd {
	return v.loadData()
}

func (v *reportView) loadData() tea.Cmd {
	id, a, load := v.id, v.app, v.load
	return func() tea.Msg {
		content, err := load(context.Background(), a)
		return reportLoadedMsg{id: id, content: content, err: err}
	}
}

func (v *reportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.id != v.id {
			return v, nil
		}
		v.loading = false
		v.content = msg.content
		v.err = msg.err
	case reloadMsg:
		v.loading = true
		return v, v.loadData()
	}
	return v, nil
}

func (v *reportView) View() string {
	switch {
	case v.err != nil:
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	case v.loading && v.content == "":
		return "\n  " + formatter.Dim("Loading "+strings.ToLower(v.title)+"...") + "\n"
	}
	return v.content
}

// ── loaders ──────────────────────────────────────────────────────────────────

func loadDashboard(ctx context.Context, a *App) (string, error) {
	req := app.NewDashboardRequest()
	if a.RecentCount > 0 {
		req.RecentCount = a.RecentCount
	}
	resp, err := a.Dashboard.Dashboard(ctx, req)
	if err != nil {
		return "", err
	}
	return formatter.FormatDashboard(resp), nil
}

func loadRoadmap(ctx context.Context, a *App) (string, error) {
	resp, err := a.Dashboard.Roadmap(ctx, app.RoadmapRequest{})
	if err != nil {
		return "", err
	}
	return formatter.FormatRoadmap(resp), nil
}

func loadChart(ctx context.Context, a *App) (string, error) {
	resp, err := a.Dashboard.Chart(ctx, app.ChartRequest{})
	if err != nil {
		return "", err
	}
	return formatter.FormatChartBox(resp.Period, resp.Chart), nil
}

func loadStats(ctx context.Context, a *App) (string, error) {
	stats, err := a.Statistics.Statistics(ctx)
	if err != nil {
		return "", err
	}
	annual, err := a.Dashboard.Annual(ctx, app.AnnualRequest{})
	if err != nil {
		return "", err
	}
	return formatter.FormatStatistics(stats) + "\n" + formatter.FormatAnnual(annual), nil
}
