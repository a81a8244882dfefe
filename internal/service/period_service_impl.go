package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/google/uuid"
)

type periodService struct {
	periods  repository.PeriodRepo
	settings repository.SettingsRepo
	uow      db.UnitOfWork
}

func NewPeriodService(periods repository.PeriodRepo, settings repository.SettingsRepo, uow db.UnitOfWork) PeriodService {
	return &periodService{periods: periods, settings: settings, uow: uow}
}

func (s *periodService) Create(ctx context.Context, p *domain.Period) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Name = strings.TrimSpace(p.Name)
	p.StartDate = calendarDay(p.StartDate)
	p.EndDate = calendarDay(p.EndDate)
	if err := domain.ValidatePeriod(p); err != nil {
		return err
	}
	now := utcNow()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeriods := repository.NewSQLitePeriodRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		if err := txPeriods.Create(ctx, p); err != nil {
			return err
		}
		active, err := resolveActive(ctx, txPeriods, txSettings)
		if err != nil {
			return err
		}
		if active != nil {
			return nil
		}
		return txSettings.Set(ctx, repository.SettingActivePeriod, p.ID)
	})
}

func (s *periodService) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	return s.periods.GetByID(ctx, id)
}

func (s *periodService) List(ctx context.Context) ([]*domain.Period, error) {
	return s.periods.List(ctx)
}

func (s *periodService) Update(ctx context.Context, p *domain.Period) error {
	p.Name = strings.TrimSpace(p.Name)
	p.StartDate = calendarDay(p.StartDate)
	p.EndDate = calendarDay(p.EndDate)
	if err := domain.ValidatePeriod(p); err != nil {
		return err
	}
	p.UpdatedAt = utcNow()
	return s.periods.Update(ctx, p)
}

func (s *periodService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPeriods := repository.NewSQLitePeriodRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		activeID, err := activePeriodID(ctx, txSettings)
		if err != nil {
			return err
		}
		if err := txPeriods.Delete(ctx, id); err != nil {
			return err
		}
		if activeID != id {
			return nil
		}

		remaining, err := txPeriods.List(ctx)
		if err != nil {
			return fmt.Errorf("listing periods: %w", err)
		}
		if len(remaining) == 0 {
			return txSettings.Delete(ctx, repository.SettingActivePeriod)
		}
		return txSettings.Set(ctx, repository.SettingActivePeriod, remaining[0].ID)
	})
}

func (s *periodService) Active(ctx context.Context) (*domain.Period, error) {
	active, err := resolveActive(ctx, s.periods, s.settings)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}
	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	if p := grading.CurrentPeriod(derefAll(periods), utcNow()); p != nil {
		return p, nil
	}
	return nil, ErrNoActivePeriod
}

func (s *periodService) SetActive(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLitePeriodRepo(tx).GetByID(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteSettingsRepo(tx).Set(ctx, repository.SettingActivePeriod, id)
	})
}

// resolveActive returns the period named by the active setting, or nil when
// the setting is missing or points to a deleted period.
func resolveActive(ctx context.Context, periods repository.PeriodRepo, settings repository.SettingsRepo) (*domain.Period, error) {
	id, err := activePeriodID(ctx, settings)
	if err != nil || id == "" {
		return nil, err
	}
	p, err := periods.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}
