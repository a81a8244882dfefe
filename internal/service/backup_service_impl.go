package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/alexanderramin/gradeflow/internal/importer"
	"github.com/alexanderramin/gradeflow/internal/repository"
)

type backupService struct {
	src      snapshotSource
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewBackupService(
	subjects repository.SubjectRepo,
	periods repository.PeriodRepo,
	evaluations repository.EvaluationRepo,
	settings repository.SettingsRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BackupService {
	return &backupService{
		src: snapshotSource{
			subjects:    subjects,
			periods:     periods,
			evaluations: evaluations,
			settings:    settings,
		},
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *backupService) Export(ctx context.Context) (b *importer.Backup, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observeUseCase(ctx, s.observer, "export", startedAt, &err, fields)

	var snap grading.Snapshot
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var loadErr error
		snap, loadErr = txSnapshotSource(tx).load(ctx, utcNow())
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	b = importer.FromSnapshot(snap)
	fields["subjects"] = len(b.Subjects)
	fields["grades"] = len(b.Grades)
	return b, nil
}

func (s *backupService) ExportFile(ctx context.Context, path string) (*importer.Backup, error) {
	b, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	if err := importer.WriteBackup(path, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *backupService) ImportFile(ctx context.Context, path string, replace bool) (*app.ImportResult, error) {
	b, err := importer.LoadBackup(path)
	if err != nil {
		return nil, fmt.Errorf("loading backup: %w", err)
	}
	return s.Import(ctx, b, replace)
}

// Import validates the whole backup before writing anything, then stores it
// in a single transaction. With replace, existing data is wiped first;
// otherwise records are added and colliding IDs abort the import.
func (s *backupService) Import(ctx context.Context, b *importer.Backup, replace bool) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"replace": replace}
	defer observeUseCase(ctx, s.observer, "import", startedAt, &err, fields)

	if errs := importer.ValidateBackup(b); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	now := utcNow()
	snap, err := importer.Convert(b, now)
	if err != nil {
		return nil, fmt.Errorf("converting backup: %w", err)
	}

	result = &app.ImportResult{
		Subjects: len(snap.Subjects),
		Periods:  len(snap.Periods),
		Grades:   len(snap.Evaluations),
		Replaced: replace,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		src := txSnapshotSource(tx)
		var current *domain.Period
		if replace {
			if err := wipe(ctx, src); err != nil {
				return err
			}
		} else {
			var err error
			if current, err = resolveActive(ctx, src.periods, src.settings); err != nil {
				return err
			}
		}

		for i := range snap.Subjects {
			if err := src.subjects.Create(ctx, &snap.Subjects[i]); err != nil {
				return fmt.Errorf("subject %q: %w", snap.Subjects[i].ID, err)
			}
		}
		for i := range snap.Periods {
			if err := src.periods.Create(ctx, &snap.Periods[i]); err != nil {
				return fmt.Errorf("period %q: %w", snap.Periods[i].ID, err)
			}
		}
		for i := range snap.Evaluations {
			if err := src.evaluations.Create(ctx, &snap.Evaluations[i]); err != nil {
				return fmt.Errorf("grade %q: %w", snap.Evaluations[i].ID, err)
			}
		}

		active := snap.ActivePeriodID
		if current != nil {
			active = current.ID
		}
		result.ActivePeriodID = active
		if active == "" {
			return nil
		}
		return src.settings.Set(ctx, repository.SettingActivePeriod, active)
	})
	if err != nil {
		return nil, fmt.Errorf("importing backup: %w", err)
	}
	fields["grades"] = result.Grades
	return result, nil
}

// wipe deletes evaluations before their parents so it does not depend on
// the foreign key cascade being enabled on the connection.
func wipe(ctx context.Context, src snapshotSource) error {
	if err := src.evaluations.DeleteAll(ctx); err != nil {
		return err
	}
	if err := src.periods.DeleteAll(ctx); err != nil {
		return err
	}
	if err := src.subjects.DeleteAll(ctx); err != nil {
		return err
	}
	return src.settings.Delete(ctx, repository.SettingActivePeriod)
}

// formatValidationErrors joins every problem found in a backup into one error.
func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "backup validation failed (%d errors):", len(errs))
	for _, e := range errs {
		fmt.Fprintf(&b, "\n  - %s", e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
