package grading

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectAverage_NoData(t *testing.T) {
	_, ok := SubjectAverage("maths", nil)
	assert.False(t, ok)

	_, ok = SubjectAverage("maths", []domain.Evaluation{planned("p1", "maths", 20, 1)})
	assert.False(t, ok, "planned evaluations are not data")

	_, ok = SubjectAverage("maths", []domain.Evaluation{actual("a1", "french", 12, 20, 1)})
	assert.False(t, ok, "other subjects are ignored")
}

func TestSubjectAverage_PlainMeanOfNormalizedScores(t *testing.T) {
	evals := []domain.Evaluation{
		actual("a1", "maths", 10, 20, 1), // 10
		actual("a2", "maths", 8, 10, 2),  // 16
		planned("p1", "maths", 20, 3),
		actual("a3", "french", 2, 20, 4),
	}
	avg, ok := SubjectAverage("maths", evals)
	require.True(t, ok)
	assert.InDelta(t, 13.0, avg, 1e-9)
}

func TestSubjectAverage_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var evals []domain.Evaluation
	for i := 0; i < 30; i++ {
		maxGrade := []float64{10, 20, 40}[rng.Intn(3)]
		evals = append(evals, actual(string(rune('a'+i)), "maths", rng.Float64()*maxGrade, maxGrade, i))
	}
	want, ok := SubjectAverage("maths", evals)
	require.True(t, ok)

	for trial := 0; trial < 20; trial++ {
		shuffled := make([]domain.Evaluation, len(evals))
		copy(shuffled, evals)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got, ok := SubjectAverage("maths", shuffled)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-9, "trial %d", trial)
	}
}

func TestPerformanceBySubject_SortsBestFirstNoDataLast(t *testing.T) {
	subjects := []domain.Subject{
		subject("art", 1, 12),
		subject("maths", 2, 14),
		subject("french", 1, 10),
	}
	evals := []domain.Evaluation{
		actual("a1", "maths", 16, 20, 1),
		actual("a2", "french", 9, 20, 1),
	}

	perf := PerformanceBySubject(subjects, evals)
	require.Len(t, perf, 3)
	assert.Equal(t, "maths", perf[0].Subject.ID)
	assert.Equal(t, domain.StandingOnTrack, perf[0].Standing)
	assert.Equal(t, "french", perf[1].Subject.ID)
	assert.Equal(t, domain.StandingNeedsImprovement, perf[1].Standing)
	assert.Equal(t, "art", perf[2].Subject.ID)
	assert.False(t, perf[2].HasData)
	assert.Equal(t, domain.StandingNoData, perf[2].Standing)
}

func TestStanding(t *testing.T) {
	assert.Equal(t, domain.StandingOnTrack, Standing(14, true, 14))
	assert.Equal(t, domain.StandingSatisfactory, Standing(10, true, 14))
	assert.Equal(t, domain.StandingNeedsImprovement, Standing(9.99, true, 14))
	assert.Equal(t, domain.StandingNoData, Standing(0, false, 14))
}
