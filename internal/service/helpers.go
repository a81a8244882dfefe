package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/alexanderramin/gradeflow/internal/repository"
)

// snapshotSource groups the repositories a snapshot is read from.
type snapshotSource struct {
	subjects    repository.SubjectRepo
	periods     repository.PeriodRepo
	evaluations repository.EvaluationRepo
	settings    repository.SettingsRepo
}

func txSnapshotSource(tx db.DBTX) snapshotSource {
	return snapshotSource{
		subjects:    repository.NewSQLiteSubjectRepo(tx),
		periods:     repository.NewSQLitePeriodRepo(tx),
		evaluations: repository.NewSQLiteEvaluationRepo(tx),
		settings:    repository.NewSQLiteSettingsRepo(tx),
	}
}

// load reads the whole dataset. A missing or dangling active period setting
// falls back to the period containing now, else the first one.
func (src snapshotSource) load(ctx context.Context, now time.Time) (grading.Snapshot, error) {
	subjects, err := src.subjects.List(ctx)
	if err != nil {
		return grading.Snapshot{}, fmt.Errorf("listing subjects: %w", err)
	}
	periods, err := src.periods.List(ctx)
	if err != nil {
		return grading.Snapshot{}, fmt.Errorf("listing periods: %w", err)
	}
	evals, err := src.evaluations.List(ctx)
	if err != nil {
		return grading.Snapshot{}, fmt.Errorf("listing evaluations: %w", err)
	}
	activeID, err := activePeriodID(ctx, src.settings)
	if err != nil {
		return grading.Snapshot{}, err
	}

	snap := grading.Snapshot{
		Subjects:       derefAll(subjects),
		Periods:        derefAll(periods),
		Evaluations:    derefAll(evals),
		ActivePeriodID: activeID,
	}
	if snap.ActivePeriod() == nil {
		snap.ActivePeriodID = ""
		if p := grading.CurrentPeriod(snap.Periods, now); p != nil {
			snap.ActivePeriodID = p.ID
		}
	}
	return snap, nil
}

func activePeriodID(ctx context.Context, settings repository.SettingsRepo) (string, error) {
	id, err := settings.Get(ctx, repository.SettingActivePeriod)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func derefAll[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// calendarDay drops the time of day, keeping t's calendar date in UTC.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireActive(snap grading.Snapshot) (*domain.Period, error) {
	active := snap.ActivePeriod()
	if active == nil {
		return nil, ErrNoActivePeriod
	}
	return active, nil
}
