package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each tab of the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewRoadmap
	ViewChart
	ViewStats
)

// View is the interface that all TUI tabs implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // tab-specific key hints for the help bar
	Title() string            // label shown in the tab strip
}
