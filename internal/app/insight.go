package app

import (
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

type RequirementRequest struct {
	SubjectID string
	// MaxGrade is the scale of the next evaluation. Defaults to 20.
	MaxGrade float64
}

type RequirementResponse struct {
	Subject        domain.Subject
	Period         domain.Period
	CurrentAverage *float64
	Count          int
	Requirement    grading.Requirement
}

type StatisticsResponse struct {
	Period     domain.Period
	Subjects   []domain.Subject
	HasData    bool
	Statistics grading.Statistics
}

// ImportResult summarizes a backup import.
type ImportResult struct {
	Subjects       int
	Periods        int
	Grades         int
	Replaced       bool
	ActivePeriodID string
}
