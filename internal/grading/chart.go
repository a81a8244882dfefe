package grading

import (
	"sort"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

type ChartPoint struct {
	EvaluationID string
	Label        string
	Date         time.Time
	// X is the evaluation's position in its subject series, not its date.
	X       int
	Y       float64
	Planned bool
}

type ChartSeries struct {
	Subject domain.Subject
	Points  []ChartPoint
}

type Chart struct {
	Mode         domain.ChartMode
	DisplayScale int
	// MaxX is the longest series length, used to size the shared x-axis.
	MaxX   int
	Series []ChartSeries
}

// IncludedInMode reports whether an evaluation of the given scale is shown in
// mode: scale-10 keeps maxGrade <= 10, scale-20 keeps maxGrade > 10.
func IncludedInMode(maxGrade float64, mode domain.ChartMode) bool {
	switch mode {
	case domain.ChartScale10:
		return maxGrade <= 10
	case domain.ChartScale20:
		return maxGrade > 10
	default:
		return true
	}
}

// BuildChart builds one date-ordered series per subject with points.
//
// Planned points are resolved to the score that keeps the series on its goal
// trajectory given every point before it, so they are folded left to right
// through a running tally: each resolved planned value is itself folded in
// before the next point is computed.
func BuildChart(subjects []domain.Subject, evals []domain.Evaluation, mode domain.ChartMode) Chart {
	scale := mode.DisplayScale()
	chart := Chart{Mode: mode, DisplayScale: scale}

	for _, s := range subjects {
		var subjectEvals []domain.Evaluation
		for _, e := range evals {
			if e.SubjectID == s.ID && IncludedInMode(e.MaxGrade, mode) {
				subjectEvals = append(subjectEvals, e)
			}
		}
		if len(subjectEvals) == 0 {
			continue
		}
		sort.SliceStable(subjectEvals, func(i, j int) bool {
			return subjectEvals[i].Date.Before(subjectEvals[j].Date)
		})

		points := make([]ChartPoint, 0, len(subjectEvals))
		var running Tally
		for i, e := range subjectEvals {
			score, ok := NormalizedScore(e)
			if !ok {
				score = plannedScore(s.Goal, running)
			}
			running = running.Add(score)
			points = append(points, ChartPoint{
				EvaluationID: e.ID,
				Label:        e.Title(),
				Date:         e.Date,
				X:            i,
				Y:            Rescale(score, scale),
				Planned:      !ok,
			})
		}

		chart.MaxX = max(chart.MaxX, len(points))
		chart.Series = append(chart.Series, ChartSeries{Subject: s, Points: points})
	}
	return chart
}

// plannedScore is the normalized score a planned evaluation needs for the
// running average to land on goal, clamped to the scale.
func plannedScore(goal float64, running Tally) float64 {
	needed := goal*float64(running.Count+1) - running.Points
	return clamp(needed, 0, Scale)
}
