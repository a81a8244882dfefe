package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/importer"
)

// ErrNoActivePeriod is returned by use cases that need a period when none
// exists yet.
var ErrNoActivePeriod = errors.New("no active period: create one with `gradeflow period add`")

type SubjectService interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	// Delete removes the subject and every evaluation attached to it.
	Delete(ctx context.Context, id string) error
}

type PeriodService interface {
	// Create stores the period and makes it active when no period is.
	Create(ctx context.Context, p *domain.Period) error
	GetByID(ctx context.Context, id string) (*domain.Period, error)
	List(ctx context.Context) ([]*domain.Period, error)
	Update(ctx context.Context, p *domain.Period) error
	// Delete removes the period with its evaluations. Deleting the active
	// period activates the first remaining one.
	Delete(ctx context.Context, id string) error
	Active(ctx context.Context) (*domain.Period, error)
	SetActive(ctx context.Context, id string) error
}

// EvaluationFilter narrows List. Empty fields match everything.
type EvaluationFilter struct {
	SubjectID string
	PeriodID  string
}

type EvaluationService interface {
	// Add stores an actual or planned evaluation. An empty PeriodID attaches
	// it to the active period, a zero Date uses the current day and an empty
	// planned label is numbered after the subject's planned evaluations.
	Add(ctx context.Context, e *domain.Evaluation) error
	// Record promotes an evaluation to an actual one with the given score.
	Record(ctx context.Context, id string, score float64) (*domain.Evaluation, error)
	GetByID(ctx context.Context, id string) (*domain.Evaluation, error)
	List(ctx context.Context, filter EvaluationFilter) ([]*domain.Evaluation, error)
	Update(ctx context.Context, e *domain.Evaluation) error
	Delete(ctx context.Context, id string) error
}

type SettingsService interface {
	ChartMode(ctx context.Context) (domain.ChartMode, error)
	SetChartMode(ctx context.Context, mode domain.ChartMode) error
}

type DashboardService interface {
	app.DashboardUseCase
	app.RoadmapUseCase
	app.ChartUseCase
	app.AnnualUseCase
}

type RequirementService interface {
	app.RequirementUseCase
}

type StatisticsService interface {
	app.StatisticsUseCase
}

type BackupService interface {
	app.BackupUseCase
	ExportFile(ctx context.Context, path string) (*importer.Backup, error)
	ImportFile(ctx context.Context, path string, replace bool) (*app.ImportResult, error)
}
