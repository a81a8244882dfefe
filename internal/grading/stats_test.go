package grading

import (
	"testing"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatistics(t *testing.T) {
	subjects := []domain.Subject{subject("maths", 2, 12), subject("french", 1, 12), subject("art", 1, 12)}
	quiz := actual("a2", "french", 6, 10, 2) // 12
	quiz.Type = domain.EvalQuiz
	evals := []domain.Evaluation{
		actual("a1", "maths", 18, 20, 1),
		quiz,
		actual("a3", "maths", 8, 20, 3),
		planned("p1", "maths", 20, 4),
	}

	st, ok := ComputeStatistics(subjects, evals)
	require.True(t, ok)
	assert.Equal(t, "a1", st.Highest.Evaluation.ID)
	assert.Equal(t, 18.0, st.Highest.Normalized)
	assert.Equal(t, "a3", st.Lowest.Evaluation.ID)
	assert.Equal(t, 8.0, st.Lowest.Normalized)
	assert.Equal(t, 2, st.CountByType[domain.EvalControl])
	assert.Equal(t, 1, st.CountByType[domain.EvalQuiz])
	assert.Equal(t, 3, st.ActualCount)
	assert.Equal(t, 1, st.PlannedCount)

	require.Len(t, st.SubjectAverages, 2, "subjects without data are left out")
	assert.Equal(t, "maths", st.SubjectAverages[0].Subject.ID)
	assert.InDelta(t, 13.0, st.SubjectAverages[0].Average, 1e-9)
	assert.Equal(t, "french", st.SubjectAverages[1].Subject.ID)
}

func TestComputeStatistics_TiesKeepFirst(t *testing.T) {
	evals := []domain.Evaluation{
		actual("a1", "maths", 15, 20, 1),
		actual("a2", "maths", 15, 20, 2),
	}
	st, ok := ComputeStatistics([]domain.Subject{subject("maths", 1, 12)}, evals)
	require.True(t, ok)
	assert.Equal(t, "a1", st.Highest.Evaluation.ID)
	assert.Equal(t, "a1", st.Lowest.Evaluation.ID)
}

func TestComputeStatistics_NoActual(t *testing.T) {
	_, ok := ComputeStatistics(nil, []domain.Evaluation{planned("p1", "maths", 20, 1)})
	assert.False(t, ok)
}

func TestRecentEvaluations(t *testing.T) {
	evals := []domain.Evaluation{
		actual("a1", "maths", 10, 20, 1),
		actual("a3", "maths", 10, 20, 3),
		actual("a2", "maths", 10, 20, 2),
	}
	got := RecentEvaluations(evals, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "a3", got[0].ID)
	assert.Equal(t, "a2", got[1].ID)
	assert.Equal(t, "a1", evals[0].ID, "input is untouched")

	assert.Len(t, RecentEvaluations(evals, 10), 3)
}

func TestNextPlannedLabel(t *testing.T) {
	evals := []domain.Evaluation{
		planned("p1", "maths", 20, 1),
		planned("p2", "french", 20, 1),
		actual("a1", "maths", 10, 20, 1),
	}
	assert.Equal(t, "Future evaluation #2", NextPlannedLabel("maths", evals))
	assert.Equal(t, "Future evaluation #1", NextPlannedLabel("art", evals))
}
