package testutil

import (
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/google/uuid"
)

// Subject options
type SubjectOption func(*domain.Subject)

func WithCoefficient(c float64) SubjectOption {
	return func(s *domain.Subject) {
		s.Coefficient = c
	}
}

func WithGoal(g float64) SubjectOption {
	return func(s *domain.Subject) {
		s.Goal = g
	}
}

func WithColor(c string) SubjectOption {
	return func(s *domain.Subject) {
		s.Color = c
	}
}

func NewTestSubject(name string, opts ...SubjectOption) *domain.Subject {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Subject{
		ID:          uuid.New().String(),
		Name:        name,
		Coefficient: 1,
		Goal:        12,
		Color:       "#458588",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Period options
type PeriodOption func(*domain.Period)

func WithDates(start, end time.Time) PeriodOption {
	return func(p *domain.Period) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithPeriodGoal(g float64) PeriodOption {
	return func(p *domain.Period) {
		p.Goal = &g
	}
}

// NewTestPeriod returns a period covering the 2025 autumn term.
func NewTestPeriod(name string, opts ...PeriodOption) *domain.Period {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Period{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluation options
type EvaluationOption func(*domain.Evaluation)

func WithScore(score float64) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.Outcome = domain.Actual{Score: score}
	}
}

func WithPlanned(label string) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.Outcome = domain.Planned{Label: label}
	}
}

func WithMaxGrade(m float64) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.MaxGrade = m
	}
}

func WithBonus(b float64) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.Bonus = b
	}
}

func WithEvalType(t domain.EvaluationType) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.Type = t
	}
}

func WithDate(d time.Time) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.Date = d
	}
}

func WithComment(c string) EvaluationOption {
	return func(e *domain.Evaluation) {
		e.Comment = c
	}
}

// NewTestEvaluation returns an actual Control scored 10/20 on 2025-10-01.
func NewTestEvaluation(subjectID, periodID string, opts ...EvaluationOption) *domain.Evaluation {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Evaluation{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		PeriodID:  periodID,
		Type:      domain.EvalControl,
		MaxGrade:  20,
		Date:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		Outcome:   domain.Actual{Score: 10},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
