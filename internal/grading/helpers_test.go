package grading

import (
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

var day0 = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

func subject(id string, coefficient, goal float64) domain.Subject {
	return domain.Subject{ID: id, Name: id, Coefficient: coefficient, Goal: goal}
}

func actual(id, subjectID string, score, maxGrade float64, dayOffset int) domain.Evaluation {
	return domain.Evaluation{
		ID:        id,
		SubjectID: subjectID,
		PeriodID:  "p1",
		Type:      domain.EvalControl,
		MaxGrade:  maxGrade,
		Date:      day0.AddDate(0, 0, dayOffset),
		Outcome:   domain.Actual{Score: score},
	}
}

func planned(id, subjectID string, maxGrade float64, dayOffset int) domain.Evaluation {
	return domain.Evaluation{
		ID:        id,
		SubjectID: subjectID,
		PeriodID:  "p1",
		Type:      domain.EvalControl,
		MaxGrade:  maxGrade,
		Date:      day0.AddDate(0, 0, dayOffset),
		Outcome:   domain.Planned{Label: "planned " + id},
	}
}

func inPeriod(e domain.Evaluation, periodID string) domain.Evaluation {
	e.PeriodID = periodID
	return e
}

func withBonus(e domain.Evaluation, bonus float64) domain.Evaluation {
	e.Bonus = bonus
	return e
}
