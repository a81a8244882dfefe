package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Settings keys.
const (
	SettingActivePeriod = db.ActivePeriodKey
	SettingChartScale   = "chart_scale"
)

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type PeriodRepo interface {
	Create(ctx context.Context, p *domain.Period) error
	GetByID(ctx context.Context, id string) (*domain.Period, error)
	// List orders periods by start date, then creation.
	List(ctx context.Context) ([]*domain.Period, error)
	Update(ctx context.Context, p *domain.Period) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type EvaluationRepo interface {
	Create(ctx context.Context, e *domain.Evaluation) error
	GetByID(ctx context.Context, id string) (*domain.Evaluation, error)
	List(ctx context.Context) ([]*domain.Evaluation, error)
	ListByPeriod(ctx context.Context, periodID string) ([]*domain.Evaluation, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Evaluation, error)
	Update(ctx context.Context, e *domain.Evaluation) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
