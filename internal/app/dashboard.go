package app

import (
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

type DashboardRequest struct {
	// Now defaults to the current time, resolved to the minute.
	Now *time.Time
	// ChartMode falls back to the stored preference when empty.
	ChartMode   domain.ChartMode
	RecentCount int
}

func NewDashboardRequest() DashboardRequest {
	return DashboardRequest{RecentCount: 5}
}

type DashboardResponse struct {
	GeneratedAt time.Time
	Period      domain.Period
	// Subjects is the full subject list, used to label recent evaluations.
	Subjects []domain.Subject
	Goal     float64
	// GoalExplicit is true when the period overrides the calculated goal.
	GoalExplicit bool
	Average      float64
	HasData      bool
	Standing     domain.GoalStanding
	Progress     float64
	Closed       bool
	Performance  []grading.SubjectPerformance
	Roadmap      []grading.RoadmapEntry
	Chart        grading.Chart
	Annual       grading.Annual
	Recent       []domain.Evaluation
	// Targets holds, per recent planned evaluation ID, the score needed on
	// it for its subject to reach the goal.
	Targets map[string]grading.Requirement
}

type RoadmapRequest struct {
	Now *time.Time
}

type RoadmapResponse struct {
	Period   domain.Period
	Progress float64
	Closed   bool
	Entries  []grading.RoadmapEntry
}

type ChartRequest struct {
	ChartMode domain.ChartMode
}

type ChartResponse struct {
	Period domain.Period
	Chart  grading.Chart
}

type AnnualRequest struct{}

type AnnualResponse struct {
	Active domain.Period
	Annual grading.Annual
}
