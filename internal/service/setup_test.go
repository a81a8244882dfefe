package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/alexanderramin/gradeflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db          *sql.DB
	subjects    repository.SubjectRepo
	periods     repository.PeriodRepo
	evaluations repository.EvaluationRepo
	settings    repository.SettingsRepo
	uow         db.UnitOfWork
}

func setupRepos(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		db:          database,
		subjects:    repository.NewSQLiteSubjectRepo(database),
		periods:     repository.NewSQLitePeriodRepo(database),
		evaluations: repository.NewSQLiteEvaluationRepo(database),
		settings:    repository.NewSQLiteSettingsRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
}

var (
	termStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	termEnd   = time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
)

// gradebook is a small populated dataset: Maths (coef 4, goal 14) at 16 and
// 12 out of 20, French (coef 2, goal 12) at 9 out of 10, plus one planned
// Maths evaluation, all in the active first term.
type gradebook struct {
	term    *domain.Period
	maths   *domain.Subject
	french  *domain.Subject
	planned *domain.Evaluation
}

func seedGradebook(t *testing.T, env testEnv) gradebook {
	t.Helper()
	ctx := context.Background()

	term := testutil.NewTestPeriod("Term 1", testutil.WithDates(termStart, termEnd))
	require.NoError(t, NewPeriodService(env.periods, env.settings, env.uow).Create(ctx, term))

	maths := testutil.NewTestSubject("Maths", testutil.WithCoefficient(4), testutil.WithGoal(14))
	french := testutil.NewTestSubject("French", testutil.WithCoefficient(2), testutil.WithGoal(12))
	subjects := NewSubjectService(env.subjects)
	require.NoError(t, subjects.Create(ctx, maths))
	require.NoError(t, subjects.Create(ctx, french))

	evals := NewEvaluationService(env.evaluations, env.uow)
	add := func(e *domain.Evaluation) {
		require.NoError(t, evals.Add(ctx, e))
	}
	add(testutil.NewTestEvaluation(maths.ID, term.ID, testutil.WithScore(16), testutil.WithDate(termStart.AddDate(0, 0, 10))))
	add(testutil.NewTestEvaluation(maths.ID, term.ID, testutil.WithScore(12), testutil.WithDate(termStart.AddDate(0, 0, 20))))
	add(testutil.NewTestEvaluation(french.ID, term.ID, testutil.WithScore(9), testutil.WithMaxGrade(10), testutil.WithDate(termStart.AddDate(0, 0, 15))))
	planned := testutil.NewTestEvaluation(maths.ID, term.ID, testutil.WithPlanned("Final exam"), testutil.WithDate(termStart.AddDate(0, 0, 60)))
	add(planned)

	return gradebook{term: term, maths: maths, french: french, planned: planned}
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
