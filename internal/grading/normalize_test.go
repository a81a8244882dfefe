package grading

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Boundaries(t *testing.T) {
	assert.Equal(t, 20.0, Normalize(20, 20, 0))
	assert.Equal(t, 20.0, Normalize(10, 10, 0))
	assert.Equal(t, 0.0, Normalize(0, 20, 0))
	assert.Equal(t, 0.0, Normalize(0, 10, 0))
}

func TestNormalize_BonusIsCappedAtMaxGrade(t *testing.T) {
	assert.Equal(t, Normalize(20, 20, 0), Normalize(20, 20, 5))
	assert.Equal(t, 20.0, Normalize(15, 20, 10))
	assert.Equal(t, 16.0, Normalize(7, 10, 1))
}

func TestNormalize_ZeroMaxGradeIsGuarded(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(5, 0, 0))
	assert.Equal(t, 0.0, Normalize(5, -10, 0))
}

func TestNormalize_MatchesFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 500; trial++ {
		maxGrade := float64(rng.Intn(100) + 1)
		raw := rng.Float64() * maxGrade
		bonus := rng.Float64() * 5
		want := math.Min(raw+bonus, maxGrade) / maxGrade * 20
		got := Normalize(raw, maxGrade, bonus)
		assert.Equal(t, want, got, "trial %d", trial)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 20.0)
	}
}

func TestNormalizedScore_PlannedReportsFalse(t *testing.T) {
	score, ok := NormalizedScore(actual("a", "s", 15, 20, 0))
	assert.True(t, ok)
	assert.Equal(t, 15.0, score)

	_, ok = NormalizedScore(planned("p", "s", 20, 0))
	assert.False(t, ok)
}

func TestNormalizedScore_AppliesBonus(t *testing.T) {
	score, ok := NormalizedScore(withBonus(actual("a", "s", 8, 10, 0), 1))
	assert.True(t, ok)
	assert.InDelta(t, 18.0, score, 1e-9)
}

func TestRescale(t *testing.T) {
	assert.Equal(t, 8.0, Rescale(16, 10))
	assert.Equal(t, 16.0, Rescale(16, 20))
}
