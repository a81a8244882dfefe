package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StandingStyle colors an average by how it compares to its goal.
func StandingStyle(standing domain.GoalStanding) lipgloss.Style {
	switch standing {
	case domain.StandingOnTrack:
		return StyleGreen
	case domain.StandingSatisfactory:
		return StyleYellow
	case domain.StandingNeedsImprovement:
		return StyleRed
	default:
		return StyleDim
	}
}

// StandingIndicator returns a colored label such as "● ON TRACK".
func StandingIndicator(standing domain.GoalStanding) string {
	switch standing {
	case domain.StandingOnTrack:
		return StyleGreen.Render("● ON TRACK")
	case domain.StandingSatisfactory:
		return StyleYellow.Render("● SATISFACTORY")
	case domain.StandingNeedsImprovement:
		return StyleRed.Render("● NEEDS IMPROVEMENT")
	default:
		return StyleDim.Render("○ NO DATA")
	}
}

// RoadmapIndicator returns the colored status label of a roadmap entry.
func RoadmapIndicator(status domain.RoadmapStatus) string {
	switch status {
	case domain.RoadmapAchieved:
		return StyleGreen.Render("✔ Achieved")
	case domain.RoadmapInProgress:
		return StyleBlue.Render("● In progress")
	case domain.RoadmapDifficult:
		return StyleRed.Render("▲ Difficult")
	case domain.RoadmapBelowGoal:
		return StyleYellow.Render("▼ Below goal")
	default:
		return StyleDim.Render("○ No grades")
	}
}

// SubjectSwatch renders a block in the subject's own color. Invalid or
// empty colors fall back to the foreground.
func SubjectSwatch(color string) string {
	if !validHexColor(color) {
		return StyleFg.Render("■")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// SubjectName renders the subject name after its color swatch.
func SubjectName(s domain.Subject) string {
	return fmt.Sprintf("%s %s", SubjectSwatch(s.Color), Bold(s.Name))
}

func validHexColor(c string) bool {
	if len(c) != 7 && len(c) != 4 {
		return false
	}
	if c[0] != '#' {
		return false
	}
	return strings.Trim(strings.ToLower(c[1:]), "0123456789abcdef") == ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
