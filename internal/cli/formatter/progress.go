package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	goalMarker  = "│"
)

// RenderProgress renders elapsed time of a period like [████░░░░] 45%.
func RenderProgress(pct float64, width int) string {
	pct = clampUnit(pct)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", StyleBlue.Render(bar), pct*100)
}

// RenderScoreBar renders a /20 average as a bar colored by standing, with
// the goal marked inside the bar.
func RenderScoreBar(avg, goal float64, standing domain.GoalStanding, width int) string {
	width = max(width, 2)
	filled := min(int(clampUnit(avg/domain.MaxGoal)*float64(width)), width)
	goalAt := min(int(clampUnit(goal/domain.MaxGoal)*float64(width)), width-1)

	style := StandingStyle(standing)
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == goalAt:
			b.WriteString(StyleFg.Render(goalMarker))
		case i < filled:
			b.WriteString(style.Render(filledBlock))
		default:
			b.WriteString(StyleDim.Render(emptyBlock))
		}
	}
	return "[" + b.String() + "]"
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// padRight pads s with spaces to the visible width w.
func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
}
