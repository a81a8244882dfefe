package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// ShortDate formats a calendar date as "Oct 1, 2025".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateRange formats a period window.
func DateRange(start, end time.Time) string {
	return fmt.Sprintf("%s → %s", ShortDate(start), ShortDate(end))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Score formats a score with two decimals.
func Score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ScoreOn formats a score against its scale, e.g. "14.50/20".
func ScoreOn(v, scale float64) string {
	return Score(v) + "/" + Scale(scale)
}

// Scale formats a grading scale without needless decimals.
func Scale(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StyledAverage renders a /20 average colored by its standing.
func StyledAverage(avg float64, hasData bool, standing domain.GoalStanding) string {
	if !hasData {
		return Dim("--")
	}
	return StandingStyle(standing).Render(ScoreOn(avg, domain.MaxGoal))
}

// EvaluationResult renders the raw outcome of an evaluation: its score with
// any bonus, or the planned marker.
func EvaluationResult(e domain.Evaluation) string {
	score, ok := e.ActualScore()
	if !ok {
		return StylePurple.Render("planned")
	}
	out := ScoreOn(score, e.MaxGrade)
	if e.Bonus > 0 {
		out += StyleGreen.Render(" +" + Scale(e.Bonus))
	}
	return out
}
