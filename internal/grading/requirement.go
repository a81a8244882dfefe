package grading

import "github.com/alexanderramin/gradeflow/internal/domain"

type Requirement struct {
	Status domain.RequirementStatus
	// Score is the raw score needed on the next evaluation's own scale.
	// Zero when the goal is already secured whatever the next score.
	Score    float64
	MaxGrade float64
	Goal     float64
	// BestPossible is the average reachable with a perfect next score.
	// Only set when the goal is impossible.
	BestPossible *float64
}

// RequiredScore computes the score needed on one more evaluation graded out
// of maxGrade for the average of tally plus that evaluation to reach goal.
func RequiredScore(goal float64, tally Tally, maxGrade float64) Requirement {
	req := Requirement{MaxGrade: maxGrade, Goal: goal}
	if maxGrade <= 0 {
		req.Status = domain.RequirementImpossible
		return req
	}

	n := float64(tally.Count)
	requiredNormalized := goal*(n+1) - tally.Points
	onScale := requiredNormalized / Scale * maxGrade

	switch {
	case onScale <= 0:
		req.Status = domain.RequirementAchieved
	case onScale > maxGrade:
		req.Status = domain.RequirementImpossible
		req.Score = onScale
		req.BestPossible = domain.Float64Ptr((tally.Points + Scale) / (n + 1))
	default:
		req.Status = domain.RequirementPossible
		req.Score = onScale
	}
	return req
}

// RequiredScoreForSubject applies RequiredScore to the subject's actual
// evaluations and goal.
func RequiredScoreForSubject(subject domain.Subject, evals []domain.Evaluation, maxGrade float64) Requirement {
	return RequiredScore(subject.Goal, TallySubject(subject.ID, evals), maxGrade)
}
