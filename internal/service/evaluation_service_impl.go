package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/google/uuid"
)

type evaluationService struct {
	evaluations repository.EvaluationRepo
	uow         db.UnitOfWork
}

func NewEvaluationService(evaluations repository.EvaluationRepo, uow db.UnitOfWork) EvaluationService {
	return &evaluationService{evaluations: evaluations, uow: uow}
}

func (s *evaluationService) Add(ctx context.Context, e *domain.Evaluation) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := utcNow()
	if e.Date.IsZero() {
		e.Date = now
	}
	e.Date = calendarDay(e.Date)
	e.Comment = strings.TrimSpace(e.Comment)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeriods := repository.NewSQLitePeriodRepo(tx)
		txEvals := repository.NewSQLiteEvaluationRepo(tx)

		if _, err := repository.NewSQLiteSubjectRepo(tx).GetByID(ctx, e.SubjectID); err != nil {
			return err
		}
		if e.PeriodID == "" {
			active, err := resolveActive(ctx, txPeriods, repository.NewSQLiteSettingsRepo(tx))
			if err != nil {
				return err
			}
			if active == nil {
				return ErrNoActivePeriod
			}
			e.PeriodID = active.ID
		} else if _, err := txPeriods.GetByID(ctx, e.PeriodID); err != nil {
			return err
		}

		if p, ok := e.Outcome.(domain.Planned); ok && strings.TrimSpace(p.Label) == "" {
			existing, err := txEvals.ListBySubject(ctx, e.SubjectID)
			if err != nil {
				return fmt.Errorf("listing subject evaluations: %w", err)
			}
			inPeriod := grading.FilterByPeriod(derefAll(existing), e.PeriodID)
			e.Outcome = domain.Planned{Label: grading.NextPlannedLabel(e.SubjectID, inPeriod)}
		}
		if err := domain.ValidateEvaluation(e); err != nil {
			return err
		}

		e.CreatedAt = now
		e.UpdatedAt = now
		return txEvals.Create(ctx, e)
	})
}

func (s *evaluationService) Record(ctx context.Context, id string, score float64) (*domain.Evaluation, error) {
	var recorded *domain.Evaluation
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEvals := repository.NewSQLiteEvaluationRepo(tx)
		e, err := txEvals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := e.Record(score, utcNow()); err != nil {
			return err
		}
		if err := txEvals.Update(ctx, e); err != nil {
			return err
		}
		recorded = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func (s *evaluationService) GetByID(ctx context.Context, id string) (*domain.Evaluation, error) {
	return s.evaluations.GetByID(ctx, id)
}

func (s *evaluationService) List(ctx context.Context, filter EvaluationFilter) ([]*domain.Evaluation, error) {
	var (
		evals []*domain.Evaluation
		err   error
	)
	switch {
	case filter.PeriodID != "":
		evals, err = s.evaluations.ListByPeriod(ctx, filter.PeriodID)
	case filter.SubjectID != "":
		evals, err = s.evaluations.ListBySubject(ctx, filter.SubjectID)
	default:
		evals, err = s.evaluations.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	if filter.PeriodID == "" || filter.SubjectID == "" {
		return evals, nil
	}

	out := evals[:0]
	for _, e := range evals {
		if e.SubjectID == filter.SubjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *evaluationService) Update(ctx context.Context, e *domain.Evaluation) error {
	e.Date = calendarDay(e.Date)
	e.Comment = strings.TrimSpace(e.Comment)
	if err := domain.ValidateEvaluation(e); err != nil {
		return err
	}
	e.UpdatedAt = utcNow()
	return s.evaluations.Update(ctx, e)
}

func (s *evaluationService) Delete(ctx context.Context, id string) error {
	return s.evaluations.Delete(ctx, id)
}
