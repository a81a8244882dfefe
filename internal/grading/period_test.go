package grading

import (
	"testing"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPeriodAverage_WeightsByCoefficient(t *testing.T) {
	subjects := []domain.Subject{subject("maths", 2, 12), subject("french", 1, 12)}
	evals := []domain.Evaluation{
		actual("a1", "maths", 12, 20, 1),
		actual("a2", "french", 18, 20, 1),
	}
	assert.InDelta(t, 14.0, PeriodAverage(subjects, evals), 1e-9)
}

func TestPeriodAverage_SubjectsWithoutGradesDoNotDilute(t *testing.T) {
	subjects := []domain.Subject{
		subject("maths", 2, 12),
		subject("french", 1, 12),
		subject("sport", 5, 12),
	}
	evals := []domain.Evaluation{
		actual("a1", "maths", 12, 20, 1),
		actual("a2", "french", 18, 20, 1),
		planned("p1", "sport", 20, 2),
	}
	assert.InDelta(t, 14.0, PeriodAverage(subjects, evals), 1e-9)
}

func TestPeriodAverage_Sentinels(t *testing.T) {
	assert.Equal(t, 0.0, PeriodAverage(nil, nil))
	assert.Equal(t, 0.0, PeriodAverage([]domain.Subject{subject("maths", 2, 12)}, nil))

	zero := []domain.Subject{subject("maths", 0, 12)}
	evals := []domain.Evaluation{actual("a1", "maths", 12, 20, 1)}
	assert.Equal(t, 0.0, PeriodAverage(zero, evals), "zero coefficient sum must not yield NaN")
}

func TestCalculatedGoal(t *testing.T) {
	subjects := []domain.Subject{subject("maths", 2, 12), subject("french", 1, 15)}
	assert.InDelta(t, 13.0, CalculatedGoal(subjects), 1e-9)
	assert.Equal(t, 0.0, CalculatedGoal(nil))
	assert.Equal(t, 0.0, CalculatedGoal([]domain.Subject{subject("x", 0, 12)}))
}

func TestEffectivePeriodGoal(t *testing.T) {
	subjects := []domain.Subject{subject("maths", 2, 12), subject("french", 1, 15)}
	p := &domain.Period{ID: "p1", StartDate: day0, EndDate: day0.Add(90 * 24 * time.Hour)}

	assert.InDelta(t, 13.0, EffectivePeriodGoal(p, subjects), 1e-9)
	assert.InDelta(t, 13.0, EffectivePeriodGoal(nil, subjects), 1e-9)

	p.Goal = domain.Float64Ptr(16)
	assert.Equal(t, 16.0, EffectivePeriodGoal(p, subjects))

	p.Goal = domain.Float64Ptr(0)
	assert.Equal(t, 0.0, EffectivePeriodGoal(p, subjects), "explicit zero is still an override")
}

func TestFilterByPeriod(t *testing.T) {
	evals := []domain.Evaluation{
		inPeriod(actual("a1", "maths", 12, 20, 1), "p1"),
		inPeriod(actual("a2", "maths", 12, 20, 1), "p2"),
	}
	got := FilterByPeriod(evals, "p2")
	assert.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)
	assert.Empty(t, FilterByPeriod(evals, ""))
}

func TestCurrentPeriod(t *testing.T) {
	periods := []domain.Period{
		{ID: "t1", StartDate: date(2025, 9, 1), EndDate: date(2025, 12, 20)},
		{ID: "t2", StartDate: date(2026, 1, 5), EndDate: date(2026, 3, 28)},
	}
	assert.Equal(t, "t2", CurrentPeriod(periods, date(2026, 2, 1)).ID)
	assert.Equal(t, "t1", CurrentPeriod(periods, date(2025, 12, 20).Add(12*time.Hour)).ID, "end day is inclusive")
	assert.Equal(t, "t1", CurrentPeriod(periods, date(2026, 7, 1)).ID, "falls back to the first")
	assert.Nil(t, CurrentPeriod(nil, date(2026, 7, 1)))
}
