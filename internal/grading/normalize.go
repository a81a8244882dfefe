// Package grading computes normalized scores, averages, goal projections and
// chart series from subjects, periods and evaluations. Every function is pure:
// inputs are never mutated and identical inputs give identical results.
package grading

import (
	"math"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

// Scale is the common basis every score is normalized to.
const Scale = domain.MaxGoal

// Normalize converts a raw score on a maxGrade scale to the 0..20 basis.
// The bonus is added to the raw score and the sum is capped at maxGrade
// before rescaling.
func Normalize(raw, maxGrade, bonus float64) float64 {
	if maxGrade <= 0 {
		return 0
	}
	return math.Min(raw+bonus, maxGrade) / maxGrade * Scale
}

// NormalizedScore returns the 0..20 score of an actual evaluation.
// Planned evaluations report false.
func NormalizedScore(e domain.Evaluation) (float64, bool) {
	raw, ok := e.ActualScore()
	if !ok {
		return 0, false
	}
	return Normalize(raw, e.MaxGrade, e.Bonus), true
}

// Rescale converts a 0..20 score to the given display scale.
func Rescale(score float64, scale int) float64 {
	return score / Scale * float64(scale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
