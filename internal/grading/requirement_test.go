package grading

import (
	"testing"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredScore(t *testing.T) {
	cases := []struct {
		name       string
		goal       float64
		prior      []float64
		maxGrade   float64
		wantStatus domain.RequirementStatus
		wantScore  float64
	}{
		{"no prior grades", 10, nil, 20, domain.RequirementPossible, 10},
		{"prior at full marks", 10, []float64{20}, 20, domain.RequirementAchieved, 0},
		{"well ahead", 8, []float64{20, 20}, 20, domain.RequirementAchieved, 0},
		{"rescaled to out of 10", 12, nil, 10, domain.RequirementPossible, 6},
		{"catch up", 12, []float64{10}, 20, domain.RequirementPossible, 14},
		{"exactly the maximum", 15, []float64{10}, 20, domain.RequirementPossible, 20},
		{"out of reach", 19, []float64{5}, 20, domain.RequirementImpossible, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tally Tally
			for _, s := range tc.prior {
				tally = tally.Add(s)
			}
			req := RequiredScore(tc.goal, tally, tc.maxGrade)
			assert.Equal(t, tc.wantStatus, req.Status)
			assert.InDelta(t, tc.wantScore, req.Score, 1e-9)
			assert.Equal(t, tc.maxGrade, req.MaxGrade)
			assert.Equal(t, tc.goal, req.Goal)
		})
	}
}

func TestRequiredScore_ImpossibleReportsBestPossible(t *testing.T) {
	req := RequiredScore(19, Tally{}.Add(5), 20)
	require.Equal(t, domain.RequirementImpossible, req.Status)
	require.NotNil(t, req.BestPossible)
	assert.Equal(t, 12.5, *req.BestPossible)
}

func TestRequiredScore_NonPositiveMaxGrade(t *testing.T) {
	req := RequiredScore(10, Tally{}, 0)
	assert.Equal(t, domain.RequirementImpossible, req.Status)
	assert.Nil(t, req.BestPossible)
}

func TestRequiredScoreForSubject_IgnoresPlannedAndOtherSubjects(t *testing.T) {
	evals := []domain.Evaluation{
		actual("a1", "maths", 5, 10, 1), // 10
		planned("p1", "maths", 20, 2),
		actual("x1", "french", 20, 20, 1),
	}
	req := RequiredScoreForSubject(subject("maths", 1, 12), evals, 20)
	assert.Equal(t, domain.RequirementPossible, req.Status)
	assert.InDelta(t, 14.0, req.Score, 1e-9)
}
