package grading

import (
	"math"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

const (
	// periodOverProgress is the elapsed fraction past which no projection is offered.
	periodOverProgress = 0.99
	// minEstimateProgress is the elapsed fraction below which the pace-based
	// evaluation count estimate is unreliable.
	minEstimateProgress = 0.01
)

type RoadmapInput struct {
	Now         time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Subject     domain.Subject
	// Evaluations may include other subjects; only Subject's are used.
	Evaluations []domain.Evaluation
}

type RoadmapEntry struct {
	Subject        domain.Subject
	Status         domain.RoadmapStatus
	CurrentAverage *float64
	// Required is the average needed on remaining evaluations. For no_grades
	// it holds the goal, for below_goal the current average.
	Required  *float64
	Remaining int
	Progress  float64
}

// PeriodProgress returns the elapsed fraction of the window, clamped to [0,1].
// A zero-length window counts as fully elapsed.
func PeriodProgress(now, start, end time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}
	return clamp(float64(now.Sub(start))/float64(total), 0, 1)
}

// PeriodClosed reports whether no projection applies: now is past the end or
// the window is inverted.
func PeriodClosed(now, start, end time.Time) bool {
	return now.After(end) || end.Before(start)
}

// ProjectRoadmap computes what the subject needs on its remaining evaluations
// to reach its goal by the end of the period. It reports false when the
// period is closed or invalid.
func ProjectRoadmap(in RoadmapInput) (RoadmapEntry, bool) {
	if PeriodClosed(in.Now, in.PeriodStart, in.PeriodEnd) {
		return RoadmapEntry{}, false
	}
	progress := PeriodProgress(in.Now, in.PeriodStart, in.PeriodEnd)
	goal := in.Subject.Goal
	entry := RoadmapEntry{Subject: in.Subject, Progress: progress}

	var tally Tally
	planned := 0
	for _, e := range in.Evaluations {
		if e.SubjectID != in.Subject.ID {
			continue
		}
		if score, ok := NormalizedScore(e); ok {
			tally = tally.Add(score)
		} else {
			planned++
		}
	}

	avg, ok := tally.Average()
	if !ok {
		entry.Status = domain.RoadmapNoGrades
		entry.Required = domain.Float64Ptr(goal)
		return entry, true
	}
	entry.CurrentAverage = domain.Float64Ptr(avg)

	if avg >= goal {
		entry.Status = domain.RoadmapAchieved
		return entry, true
	}

	if progress >= periodOverProgress {
		entry.Status = domain.RoadmapBelowGoal
		entry.Required = domain.Float64Ptr(avg)
		return entry, true
	}

	remaining := estimateRemaining(tally.Count, planned, progress)
	entry.Remaining = remaining

	required := (goal*float64(tally.Count+remaining) - avg*float64(tally.Count)) / float64(remaining)
	switch {
	case required > Scale:
		entry.Status = domain.RoadmapDifficult
		entry.Required = domain.Float64Ptr(required)
	case required < 0:
		entry.Status = domain.RoadmapAchieved
	default:
		entry.Status = domain.RoadmapInProgress
		entry.Required = domain.Float64Ptr(required)
	}
	return entry, true
}

// estimateRemaining returns how many evaluations are still to come. Planned
// evaluations are authoritative; otherwise the count is extrapolated from
// the pace so far. Never less than one.
func estimateRemaining(current, planned int, progress float64) int {
	if planned > 0 {
		return planned
	}
	var total int
	if progress > minEstimateProgress {
		total = max(current+1, int(math.Round(float64(current)/progress)))
	} else {
		total = current * 2
	}
	return max(1, total-current)
}

// BuildRoadmap projects every subject against the period. The result is empty
// when the period is nil, closed or invalid.
func BuildRoadmap(now time.Time, period *domain.Period, subjects []domain.Subject, evals []domain.Evaluation) []RoadmapEntry {
	if period == nil {
		return nil
	}
	var out []RoadmapEntry
	for _, s := range subjects {
		entry, ok := ProjectRoadmap(RoadmapInput{
			Now:         now,
			PeriodStart: period.StartDate,
			PeriodEnd:   period.EndDate,
			Subject:     s,
			Evaluations: evals,
		})
		if !ok {
			return nil
		}
		out = append(out, entry)
	}
	return out
}
