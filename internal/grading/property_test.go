package grading

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomDataset(rng *rand.Rand) ([]domain.Subject, []domain.Evaluation) {
	nSubjects := rng.Intn(6) + 1
	subjects := make([]domain.Subject, nSubjects)
	for i := range subjects {
		subjects[i] = subject(fmt.Sprintf("s%d", i), float64(rng.Intn(5)+1), float64(rng.Intn(21)))
	}
	var evals []domain.Evaluation
	nEvals := rng.Intn(40)
	for i := 0; i < nEvals; i++ {
		subjectID := subjects[rng.Intn(nSubjects)].ID
		maxGrade := []float64{5, 10, 20, 100}[rng.Intn(4)]
		id := fmt.Sprintf("e%d", i)
		if rng.Intn(4) == 0 {
			evals = append(evals, planned(id, subjectID, maxGrade, rng.Intn(60)))
			continue
		}
		e := actual(id, subjectID, rng.Float64()*maxGrade, maxGrade, rng.Intn(60))
		if rng.Intn(5) == 0 {
			e.Bonus = rng.Float64() * 2
		}
		evals = append(evals, e)
	}
	return subjects, evals
}

func TestProperty_AggregatesAreBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		subjects, evals := randomDataset(rng)

		avg := PeriodAverage(subjects, evals)
		assert.GreaterOrEqual(t, avg, 0.0, "trial %d", trial)
		assert.LessOrEqual(t, avg, 20.0+1e-9, "trial %d", trial)

		for _, s := range subjects {
			if a, ok := SubjectAverage(s.ID, evals); ok {
				assert.GreaterOrEqual(t, a, 0.0)
				assert.LessOrEqual(t, a, 20.0+1e-9)
			}
		}

		chart := BuildChart(subjects, evals, domain.ChartCombined)
		for _, series := range chart.Series {
			for _, p := range series.Points {
				assert.GreaterOrEqual(t, p.Y, 0.0)
				assert.LessOrEqual(t, p.Y, 20.0+1e-9)
			}
		}
	}
}

func TestProperty_PeriodAveragePermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for trial := 0; trial < 100; trial++ {
		subjects, evals := randomDataset(rng)
		want := PeriodAverage(subjects, evals)

		shuffled := make([]domain.Evaluation, len(evals))
		copy(shuffled, evals)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.InDelta(t, want, PeriodAverage(subjects, shuffled), 1e-9, "trial %d", trial)
	}
}

func TestProperty_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	period := &domain.Period{ID: "p1", StartDate: periodStart, EndDate: periodEnd}
	for trial := 0; trial < 50; trial++ {
		subjects, evals := randomDataset(rng)

		assert.Equal(t, PeriodAverage(subjects, evals), PeriodAverage(subjects, evals))
		assert.Equal(t, BuildChart(subjects, evals, domain.ChartScale20), BuildChart(subjects, evals, domain.ChartScale20))
		assert.Equal(t, BuildRoadmap(midPeriod, period, subjects, evals), BuildRoadmap(midPeriod, period, subjects, evals))
		assert.Equal(t, PerformanceBySubject(subjects, evals), PerformanceBySubject(subjects, evals))
	}
}

func TestProperty_RequirementReachesGoal(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	for trial := 0; trial < 200; trial++ {
		var tally Tally
		prior := rng.Intn(8)
		for i := 0; i < prior; i++ {
			tally = tally.Add(rng.Float64() * 20)
		}
		goal := rng.Float64() * 20
		maxGrade := []float64{10, 20, 40}[rng.Intn(3)]
		req := RequiredScore(goal, tally, maxGrade)
		if req.Status != domain.RequirementPossible {
			continue
		}
		after, ok := tally.Add(Normalize(req.Score, maxGrade, 0)).Average()
		require.True(t, ok)
		assert.InDelta(t, goal, after, 1e-9, "trial %d", trial)
	}
}
