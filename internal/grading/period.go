package grading

import (
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

// PeriodAverage weights each subject's average by its coefficient. Subjects
// without an actual evaluation are left out of both sums so they cannot drag
// the average toward zero. Returns 0 when no subject qualifies.
func PeriodAverage(subjects []domain.Subject, evals []domain.Evaluation) float64 {
	tallies := tallyBySubject(evals)

	var points, coefficients float64
	for _, s := range subjects {
		avg, ok := tallies[s.ID].Average()
		if !ok {
			continue
		}
		points += avg * s.Coefficient
		coefficients += s.Coefficient
	}
	if coefficients == 0 {
		return 0
	}
	return points / coefficients
}

// CalculatedGoal is the coefficient-weighted mean of all subject goals.
func CalculatedGoal(subjects []domain.Subject) float64 {
	var goals, coefficients float64
	for _, s := range subjects {
		goals += s.Goal * s.Coefficient
		coefficients += s.Coefficient
	}
	if coefficients == 0 {
		return 0
	}
	return goals / coefficients
}

// EffectivePeriodGoal returns the period's explicit goal, falling back to the
// weighted subject goals. A nil period uses the fallback.
func EffectivePeriodGoal(period *domain.Period, subjects []domain.Subject) float64 {
	if period != nil && period.Goal != nil {
		return *period.Goal
	}
	return CalculatedGoal(subjects)
}

// FilterByPeriod returns the evaluations attached to periodID.
func FilterByPeriod(evals []domain.Evaluation, periodID string) []domain.Evaluation {
	if periodID == "" {
		return nil
	}
	var out []domain.Evaluation
	for _, e := range evals {
		if e.PeriodID == periodID {
			out = append(out, e)
		}
	}
	return out
}

// FilterBySubject returns the evaluations attached to subjectID.
func FilterBySubject(evals []domain.Evaluation, subjectID string) []domain.Evaluation {
	var out []domain.Evaluation
	for _, e := range evals {
		if e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out
}

// CurrentPeriod returns the first period containing now, else the first
// period, else nil.
func CurrentPeriod(periods []domain.Period, now time.Time) *domain.Period {
	for i := range periods {
		if periods[i].Contains(now) {
			p := periods[i]
			return &p
		}
	}
	if len(periods) == 0 {
		return nil
	}
	p := periods[0]
	return &p
}
