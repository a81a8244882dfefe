package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/importer"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/alexanderramin/gradeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackup(env testEnv) BackupService {
	return NewBackupService(env.subjects, env.periods, env.evaluations, env.settings, env.uow)
}

func TestBackup_RoundTripThroughFile(t *testing.T) {
	source := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, source)

	path := filepath.Join(t.TempDir(), "grades.json")
	exported, err := newBackup(source).ExportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, importer.BackupVersion, exported.Version)
	assert.Len(t, exported.Grades, 4)
	assert.Equal(t, book.term.ID, exported.ActivePeriodID)

	target := setupRepos(t)
	result, err := newBackup(target).ImportFile(ctx, path, true)
	require.NoError(t, err)
	assert.Equal(t, &app.ImportResult{
		Subjects:       2,
		Periods:        1,
		Grades:         4,
		Replaced:       true,
		ActivePeriodID: book.term.ID,
	}, result)

	want, err := newDashboard(source).Dashboard(ctx, app.DashboardRequest{Now: at(midTerm)})
	require.NoError(t, err)
	got, err := newDashboard(target).Dashboard(ctx, app.DashboardRequest{Now: at(midTerm)})
	require.NoError(t, err)
	assert.InDelta(t, want.Average, got.Average, 1e-9)
	assert.Equal(t, want.Period.ID, got.Period.ID)

	fetched, err := target.evaluations.GetByID(ctx, book.planned.ID)
	require.NoError(t, err)
	label, ok := fetched.PlannedLabel()
	require.True(t, ok)
	assert.Equal(t, "Final exam", label)
}

func TestBackup_ImportCollectsAllValidationErrors(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()

	b := &importer.Backup{
		Subjects: []importer.SubjectRecord{{ID: "s1", Name: "Maths", Coefficient: 0, Goal: 12}},
		Periods:  []importer.PeriodRecord{{ID: "p1", Name: "T1", StartDate: "2025-09-01", EndDate: "2025-12-20"}},
		Grades: []importer.GradeRecord{
			{ID: "g1", SubjectID: "nope", PeriodID: "p1", Grade: domain.Float64Ptr(12), MaxGrade: 20, Type: "Control", Date: "2025-10-01"},
		},
	}
	_, err := newBackup(env).Import(ctx, b, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup validation failed (2 errors)")
	assert.Contains(t, err.Error(), "subjects[0]")
	assert.Contains(t, err.Error(), `grades[0].subjectId "nope"`)

	subjects, err := env.subjects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects, "nothing written when validation fails")
}

func TestBackup_ImportRollsBackOnWriteFailure(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)

	exported, err := newBackup(env).Export(ctx)
	require.NoError(t, err)
	for i := range exported.Grades {
		exported.Grades[i].Comment = "restored"
	}

	faulty := testutil.NewFaultyUoW(env.db, "INSERT INTO evaluations")
	faulty.Nth = 3
	svc := NewBackupService(env.subjects, env.periods, env.evaluations, env.settings, faulty)

	_, err = svc.Import(ctx, exported, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "importing backup")

	evals, err := env.evaluations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, evals, 4, "replace wipe rolled back")
	for _, e := range evals {
		assert.NotEqual(t, "restored", e.Comment)
	}
	_, err = env.subjects.GetByID(ctx, book.maths.ID)
	assert.NoError(t, err)
}

func TestBackup_MergeKeepsActivePeriodAndRejectsCollisions(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := newBackup(env)

	extra := &importer.Backup{
		Subjects: []importer.SubjectRecord{{ID: "1700000000001", Name: "Music", Coefficient: 1, Goal: 15, Color: "#b16286"}},
		Periods:  []importer.PeriodRecord{{ID: "1700000000002", Name: "Summer", StartDate: "2026-06-01", EndDate: "2026-07-15"}},
		Grades: []importer.GradeRecord{
			{ID: "1700000000003", SubjectID: "1700000000001", PeriodID: "1700000000002", Name: "Recital", MaxGrade: 20, Type: "Oral", Date: "2026-06-20T00:00:00.000Z"},
		},
	}
	result, err := svc.Import(ctx, extra, false)
	require.NoError(t, err)
	assert.False(t, result.Replaced)
	assert.Equal(t, book.term.ID, result.ActivePeriodID, "merge keeps the current active period")

	subjects, err := env.subjects.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 3)

	_, err = svc.Import(ctx, extra, false)
	require.Error(t, err, "importing the same IDs twice collides")
	subjects, err = env.subjects.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 3)
}

func TestBackup_MergeIgnoresBackupActivePeriod(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)

	other := &importer.Backup{
		Periods:        []importer.PeriodRecord{{ID: "p2", Name: "Term 2", StartDate: "2026-01-05", EndDate: "2026-03-28"}},
		ActivePeriodID: "p2",
	}
	result, err := newBackup(env).Import(ctx, other, false)
	require.NoError(t, err)
	assert.Equal(t, book.term.ID, result.ActivePeriodID)

	stored, err := env.settings.Get(ctx, repository.SettingActivePeriod)
	require.NoError(t, err)
	assert.Equal(t, book.term.ID, stored)

	_, err = env.periods.GetByID(ctx, "p2")
	assert.NoError(t, err, "the period itself is merged")
}

func TestBackup_MergeAdoptsBackupActivePeriodWhenNoneIsSet(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()

	other := &importer.Backup{
		Periods:        []importer.PeriodRecord{{ID: "p2", Name: "Term 2", StartDate: "2020-01-05", EndDate: "2020-03-28"}},
		ActivePeriodID: "p2",
	}
	result, err := newBackup(env).Import(ctx, other, false)
	require.NoError(t, err)
	assert.Equal(t, "p2", result.ActivePeriodID)
}
