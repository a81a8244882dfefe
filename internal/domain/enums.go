package domain

import (
	"slices"
	"strings"
)

type EvaluationType string

const (
	EvalControl      EvaluationType = "Control"
	EvalHomework     EvaluationType = "Homework"
	EvalQuiz         EvaluationType = "Quiz"
	EvalProject      EvaluationType = "Project"
	EvalOral         EvaluationType = "Oral"
	EvalPresentation EvaluationType = "Presentation"
)

// EvaluationTypes lists the accepted evaluation types in display order.
var EvaluationTypes = []EvaluationType{
	EvalControl, EvalHomework, EvalQuiz, EvalProject, EvalOral, EvalPresentation,
}

// Valid reports whether t is one of EvaluationTypes.
func (t EvaluationType) Valid() bool {
	return slices.Contains(EvaluationTypes, t)
}

// ParseEvaluationType matches s case-insensitively against the accepted types.
func ParseEvaluationType(s string) (EvaluationType, bool) {
	for _, t := range EvaluationTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

type RoadmapStatus string

const (
	RoadmapNoGrades   RoadmapStatus = "no_grades"
	RoadmapAchieved   RoadmapStatus = "achieved"
	RoadmapBelowGoal  RoadmapStatus = "below_goal"
	RoadmapDifficult  RoadmapStatus = "difficult"
	RoadmapInProgress RoadmapStatus = "in_progress"
)

type RequirementStatus string

const (
	RequirementAchieved   RequirementStatus = "achieved"
	RequirementPossible   RequirementStatus = "possible"
	RequirementImpossible RequirementStatus = "impossible"
)

type GoalStanding string

const (
	StandingNoData           GoalStanding = "no_data"
	StandingOnTrack          GoalStanding = "on_track"
	StandingSatisfactory     GoalStanding = "satisfactory"
	StandingNeedsImprovement GoalStanding = "needs_improvement"
)

// ChartMode selects which evaluations the evolution chart shows and on
// which scale it plots them.
type ChartMode string

const (
	ChartScale10  ChartMode = "scale-10"
	ChartScale20  ChartMode = "scale-20"
	ChartCombined ChartMode = "combined"
)

// ParseChartMode accepts "10", "20", "combined" and the canonical names.
func ParseChartMode(s string) (ChartMode, bool) {
	switch s {
	case "10", string(ChartScale10):
		return ChartScale10, true
	case "20", string(ChartScale20):
		return ChartScale20, true
	case "combined", "all":
		return ChartCombined, true
	}
	return "", false
}

// DisplayScale is the y-axis maximum for the mode.
func (m ChartMode) DisplayScale() int {
	if m == ChartScale10 {
		return 10
	}
	return 20
}
