package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/charmbracelet/lipgloss"
)

const (
	chartColWidth    = 4
	defaultChartRows = 10
	actualMarker     = "●"
	plannedMarker    = "○"
	overlapMarker    = "◆"
)

// ModeLabel describes a chart mode for headings.
func ModeLabel(mode domain.ChartMode) string {
	switch mode {
	case domain.ChartScale10:
		return "evaluations out of 10, on /10"
	case domain.ChartCombined:
		return "all evaluations, on /20"
	default:
		return "evaluations out of more than 10, on /20"
	}
}

type chartCell struct {
	marker string
	style  lipgloss.Style
	used   bool
}

// FormatChart plots every series on a shared grid: rows are score bands from
// the display scale down to zero, columns are positions in each series.
// Planned points show the score that keeps the subject on its goal.
func FormatChart(chart grading.Chart, rows int) string {
	if len(chart.Series) == 0 || chart.MaxX == 0 {
		return Dim("No evaluations on this scale.") + "\n"
	}
	if rows <= 0 {
		rows = defaultChartRows
	}
	scale := float64(chart.DisplayScale)

	grid := make([][]chartCell, rows+1)
	for r := range grid {
		grid[r] = make([]chartCell, chart.MaxX)
	}
	for _, s := range chart.Series {
		style := StyleFg
		if validHexColor(s.Subject.Color) {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Subject.Color))
		}
		for _, p := range s.Points {
			r := rows - int(math.Round(p.Y/scale*float64(rows)))
			r = min(max(r, 0), rows)
			cell := &grid[r][p.X]
			marker := actualMarker
			if p.Planned {
				marker = plannedMarker
			}
			if cell.used {
				*cell = chartCell{marker: overlapMarker, style: StyleFg, used: true}
				continue
			}
			*cell = chartCell{marker: marker, style: style, used: true}
		}
	}

	var b strings.Builder
	for r, line := range grid {
		label := "   "
		if r == 0 || r == rows || r == rows/2 {
			label = fmt.Sprintf("%3.0f", scale*float64(rows-r)/float64(rows))
		}
		b.WriteString(Dim(label + " │"))
		for _, cell := range line {
			text := strings.Repeat(" ", chartColWidth)
			if cell.used {
				text = strings.Repeat(" ", chartColWidth-1) + cell.style.Render(cell.marker)
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}
	b.WriteString(Dim("    └" + strings.Repeat("─", chart.MaxX*chartColWidth+1)))
	b.WriteString("\n     ")
	for x := 1; x <= chart.MaxX; x++ {
		b.WriteString(Dim(fmt.Sprintf("%*d", chartColWidth, x)))
	}
	b.WriteString("\n\n")

	for _, s := range chart.Series {
		last := s.Points[len(s.Points)-1]
		fmt.Fprintf(&b, "%s %s\n", padRight(SubjectName(s.Subject), 24),
			Dim(fmt.Sprintf("%d point%s, last %s", len(s.Points), plural(len(s.Points)), ScoreOn(last.Y, scale))))
	}
	b.WriteString(Dim(fmt.Sprintf("%s actual   %s planned (goal pace)   %s overlap", actualMarker, plannedMarker, overlapMarker)) + "\n")
	return b.String()
}

// FormatChartBox frames the chart with its mode.
func FormatChartBox(period domain.Period, chart grading.Chart) string {
	content := Dim(period.Name+" · "+ModeLabel(chart.Mode)) + "\n\n" + FormatChart(chart, defaultChartRows)
	return RenderBox("Evolution", content)
}
