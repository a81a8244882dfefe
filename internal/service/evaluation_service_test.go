package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/alexanderramin/gradeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationService_Add_AttachesToActivePeriod(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	e := &domain.Evaluation{
		SubjectID: book.french.ID,
		Type:      domain.EvalOral,
		MaxGrade:  20,
		Outcome:   domain.Actual{Score: 15},
	}
	require.NoError(t, svc.Add(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, book.term.ID, e.PeriodID)

	today := calendarDay(time.Now().UTC())
	assert.Equal(t, today, e.Date, "date defaults to today")

	fetched, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	score, ok := fetched.ActualScore()
	require.True(t, ok)
	assert.Equal(t, 15.0, score)
}

func TestEvaluationService_Add_NumbersPlannedLabels(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	first := &domain.Evaluation{SubjectID: book.maths.ID, Type: domain.EvalControl, MaxGrade: 20, Outcome: domain.Planned{}}
	require.NoError(t, svc.Add(ctx, first))
	label, ok := first.PlannedLabel()
	require.True(t, ok)
	assert.Equal(t, "Future evaluation #2", label, "the seeded final exam is already planned")

	other := &domain.Evaluation{SubjectID: book.french.ID, Type: domain.EvalQuiz, MaxGrade: 10, Outcome: domain.Planned{Label: "  "}}
	require.NoError(t, svc.Add(ctx, other))
	label, _ = other.PlannedLabel()
	assert.Equal(t, "Future evaluation #1", label)
}

func TestEvaluationService_Add_NumbersPlannedLabelsPerPeriod(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	term2 := testutil.NewTestPeriod("Term 2", testutil.WithDates(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, NewPeriodService(env.periods, env.settings, env.uow).Create(ctx, term2))

	e := &domain.Evaluation{SubjectID: book.maths.ID, PeriodID: term2.ID, Type: domain.EvalControl, MaxGrade: 20, Outcome: domain.Planned{}}
	require.NoError(t, svc.Add(ctx, e))
	label, ok := e.PlannedLabel()
	require.True(t, ok)
	assert.Equal(t, "Future evaluation #1", label, "Term 1's final exam is not counted")
}

func TestEvaluationService_Add_Errors(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	svc := NewEvaluationService(env.evaluations, env.uow)

	maths := testutil.NewTestSubject("Maths")
	require.NoError(t, NewSubjectService(env.subjects).Create(ctx, maths))

	noPeriod := &domain.Evaluation{SubjectID: maths.ID, Type: domain.EvalControl, MaxGrade: 20, Outcome: domain.Actual{Score: 10}}
	assert.True(t, errors.Is(svc.Add(ctx, noPeriod), ErrNoActivePeriod))

	term := testutil.NewTestPeriod("Term 1")
	require.NoError(t, NewPeriodService(env.periods, env.settings, env.uow).Create(ctx, term))

	unknownSubject := &domain.Evaluation{SubjectID: "ghost", Type: domain.EvalControl, MaxGrade: 20, Outcome: domain.Actual{Score: 10}}
	assert.True(t, errors.Is(svc.Add(ctx, unknownSubject), repository.ErrNotFound))

	unknownPeriod := &domain.Evaluation{SubjectID: maths.ID, PeriodID: "ghost", Type: domain.EvalControl, MaxGrade: 20, Outcome: domain.Actual{Score: 10}}
	assert.True(t, errors.Is(svc.Add(ctx, unknownPeriod), repository.ErrNotFound))

	outOfRange := &domain.Evaluation{SubjectID: maths.ID, Type: domain.EvalControl, MaxGrade: 10, Outcome: domain.Actual{Score: 12}}
	err := svc.Add(ctx, outOfRange)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalid))

	all, err := svc.List(ctx, EvaluationFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEvaluationService_Record_PromotesPlanned(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	recorded, err := svc.Record(ctx, book.planned.ID, 17)
	require.NoError(t, err)
	score, ok := recorded.ActualScore()
	require.True(t, ok)
	assert.Equal(t, 17.0, score)

	fetched, err := svc.GetByID(ctx, book.planned.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsPlanned())
	assert.Equal(t, book.planned.Date, fetched.Date, "date is kept")
}

func TestEvaluationService_Record_OutOfRangeLeavesPlanned(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	_, err := svc.Record(ctx, book.planned.ID, 21)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalid))

	fetched, err := svc.GetByID(ctx, book.planned.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsPlanned())

	_, err = svc.Record(ctx, "missing", 10)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestEvaluationService_List_Filters(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	other := testutil.NewTestPeriod("Term 2", testutil.WithDates(termEnd.AddDate(0, 0, 1), termEnd.AddDate(0, 3, 0)))
	require.NoError(t, NewPeriodService(env.periods, env.settings, env.uow).Create(ctx, other))
	require.NoError(t, svc.Add(ctx, testutil.NewTestEvaluation(book.maths.ID, other.ID, testutil.WithScore(11))))

	all, err := svc.List(ctx, EvaluationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	maths, err := svc.List(ctx, EvaluationFilter{SubjectID: book.maths.ID})
	require.NoError(t, err)
	assert.Len(t, maths, 4)

	term, err := svc.List(ctx, EvaluationFilter{PeriodID: book.term.ID})
	require.NoError(t, err)
	assert.Len(t, term, 4)

	both, err := svc.List(ctx, EvaluationFilter{SubjectID: book.maths.ID, PeriodID: book.term.ID})
	require.NoError(t, err)
	assert.Len(t, both, 3)
	for _, e := range both {
		assert.Equal(t, book.maths.ID, e.SubjectID)
		assert.Equal(t, book.term.ID, e.PeriodID)
	}
}

func TestEvaluationService_UpdateAndDelete(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	book := seedGradebook(t, env)
	svc := NewEvaluationService(env.evaluations, env.uow)

	e, err := svc.GetByID(ctx, book.planned.ID)
	require.NoError(t, err)
	e.Comment = " chapters 4 to 6 "
	e.Bonus = 1
	require.NoError(t, svc.Update(ctx, e))

	fetched, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "chapters 4 to 6", fetched.Comment)
	assert.Equal(t, 1.0, fetched.Bonus)

	fetched.MaxGrade = 0
	assert.True(t, errors.Is(svc.Update(ctx, fetched), domain.ErrInvalid))

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.GetByID(ctx, e.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
