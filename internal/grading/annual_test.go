package grading

import (
	"testing"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSchoolYearOf(t *testing.T) {
	assert.Equal(t, "2025-2026", SchoolYearOf(date(2025, 9, 1)).String())
	assert.Equal(t, "2024-2025", SchoolYearOf(date(2025, 8, 31)).String())
	assert.Equal(t, "2025-2026", SchoolYearOf(date(2026, 1, 15)).String())
	assert.Equal(t, "2025-2026", SchoolYearOf(date(2025, 12, 31)).String())
}

func annualFixture() ([]domain.Period, []domain.Subject, []domain.Evaluation) {
	periods := []domain.Period{
		{ID: "t1", Name: "T1", StartDate: date(2025, 9, 1), EndDate: date(2025, 12, 20)},
		{ID: "t2", Name: "T2", StartDate: date(2026, 1, 5), EndDate: date(2026, 3, 28)},
		{ID: "next", Name: "Next year", StartDate: date(2026, 9, 1), EndDate: date(2026, 12, 20)},
	}
	subjects := []domain.Subject{subject("maths", 2, 12), subject("french", 1, 12)}
	evals := []domain.Evaluation{
		inPeriod(actual("a1", "maths", 12, 20, 10), "t1"),
		inPeriod(actual("a2", "maths", 16, 20, 130), "t2"),
		inPeriod(actual("a3", "french", 10, 20, 131), "t2"),
		inPeriod(actual("a4", "french", 20, 20, 380), "next"),
	}
	return periods, subjects, evals
}

func TestAnnualAverage_UnionOfYearPeriods(t *testing.T) {
	periods, subjects, evals := annualFixture()

	annual := AnnualAverage(periods[1], periods, subjects, evals)
	require.True(t, annual.Available)
	assert.Equal(t, "2025-2026", annual.Year.String())
	assert.Len(t, annual.Periods, 2)
	// maths (12+16)/2=14 weighted 2, french 10 weighted 1
	assert.InDelta(t, 38.0/3.0, annual.Average, 1e-9)
}

func TestAnnualAverage_SinglePeriodIsUnavailable(t *testing.T) {
	periods, subjects, evals := annualFixture()

	annual := AnnualAverage(periods[2], periods, subjects, evals)
	assert.False(t, annual.Available)
	assert.Equal(t, 0.0, annual.Average)
	assert.Len(t, annual.Periods, 1)
}

func TestPeriodsInSameYear_KeepsInputOrder(t *testing.T) {
	periods, _, _ := annualFixture()
	got := PeriodsInSameYear(periods[0], []domain.Period{periods[1], periods[2], periods[0]})
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)
}
