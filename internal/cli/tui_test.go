package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTUIDriver builds the TUI model, sizes it and drains the initial loads
// against the in-memory database.
func newTUIDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 60))
	d.DrainInit()
	return d
}

func activeTab(d *teatest.Driver) ViewID {
	m := d.Model.(appModel)
	return m.activeView().ID()
}

func TestTUI_LoadsEveryTab(t *testing.T) {
	app := testApp(t)
	seedGradebook(t, app)
	d := newTUIDriver(t, app)

	assert.Equal(t, ViewDashboard, activeTab(d))
	d.RequireContains("gradeflow", "1 Dashboard", "Term 1", "Maths", "French")

	m := d.Model.(appModel)
	for _, v := range m.tabs {
		rv := v.(*reportView)
		assert.False(t, rv.loading, v.Title())
		assert.NoError(t, rv.err, v.Title())
	}
}

func TestTUI_TabNavigation(t *testing.T) {
	app := testApp(t)
	seedGradebook(t, app)
	d := newTUIDriver(t, app)

	d.Press(tea.KeyTab)
	assert.Equal(t, ViewRoadmap, activeTab(d))
	d.RequireContains("Roadmap")

	d.PressKey('3')
	assert.Equal(t, ViewChart, activeTab(d))
	d.RequireContains("Evolution", "c chart scale")

	d.Press(tea.KeyShiftTab)
	d.Press(tea.KeyShiftTab)
	d.Press(tea.KeyShiftTab)
	assert.Equal(t, ViewStats, activeTab(d), "navigation wraps around")
	d.RequireContains("Statistics", "School year")
}

func TestTUI_ChartScaleCyclesAndPersists(t *testing.T) {
	app := testApp(t)
	seedGradebook(t, app)
	d := newTUIDriver(t, app)

	d.PressKey('c')
	mode, err := app.Settings.ChartMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ChartScale20, mode, "c only acts on the chart tab")

	d.PressKey('3')
	d.PressKey('c')
	mode, err = app.Settings.ChartMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ChartScale10, mode)
	d.RequireContains("Chart scale: evaluations out of 10")
	assert.True(t, d.SawMessage("reportLoadedMsg"))
}

func TestTUI_SwitchPeriod(t *testing.T) {
	app := testApp(t)
	seedGradebook(t, app)
	_, err := executeCmd(t, app, "period", "add", "Term 2", "--start", "2026-01-05", "--end", "2026-03-28")
	require.NoError(t, err)
	d := newTUIDriver(t, app)

	d.PressKey(']')
	d.RequireContains("Active period: Term 2")
	active, err := app.Periods.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Term 2", active.Name)

	d.PressKey('[')
	active, err = app.Periods.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Term 1", active.Name)
}

func TestTUI_EmptyDatabaseShowsError(t *testing.T) {
	app := testApp(t)
	d := newTUIDriver(t, app)

	d.RequireContains("Error: no active period")
}

func TestTUI_HelpAndQuit(t *testing.T) {
	app := testApp(t)
	seedGradebook(t, app)
	d := newTUIDriver(t, app)

	d.RequireContains("tab next tab", "q quit")
	d.PressKey('?')
	d.RequireContains("] next period", "refresh")

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}
