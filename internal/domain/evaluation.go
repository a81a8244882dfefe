package domain

import (
	"fmt"
	"time"
)

// Outcome is the result side of an evaluation: either an Actual score or a
// Planned placeholder awaiting one.
type Outcome interface {
	isOutcome()
}

// Actual is a recorded score on the evaluation's own scale (0..MaxGrade).
type Actual struct {
	Score float64
}

// Planned is a future evaluation identified by a label.
type Planned struct {
	Label string
}

func (Actual) isOutcome()  {}
func (Planned) isOutcome() {}

type Evaluation struct {
	ID        string
	SubjectID string         `validate:"required"`
	PeriodID  string         `validate:"required"`
	Type      EvaluationType `validate:"required,evaltype"`
	MaxGrade  float64        `validate:"gt=0"`
	Date      time.Time      `validate:"required"`
	Comment   string
	Bonus     float64 `validate:"gte=0"`
	Outcome   Outcome
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPlanned reports whether the evaluation is a placeholder without a score.
func (e *Evaluation) IsPlanned() bool {
	_, ok := e.Outcome.(Planned)
	return ok
}

// ActualScore returns the raw score of an actual evaluation.
func (e *Evaluation) ActualScore() (float64, bool) {
	a, ok := e.Outcome.(Actual)
	if !ok {
		return 0, false
	}
	return a.Score, true
}

// PlannedLabel returns the label of a planned evaluation.
func (e *Evaluation) PlannedLabel() (string, bool) {
	p, ok := e.Outcome.(Planned)
	if !ok {
		return "", false
	}
	return p.Label, true
}

// Title returns the planned label, or the evaluation type for actual ones.
func (e *Evaluation) Title() string {
	if label, ok := e.PlannedLabel(); ok {
		return label
	}
	return string(e.Type)
}

// Record turns the evaluation into an actual one with the given raw score,
// keeping every other field.
func (e *Evaluation) Record(score float64, now time.Time) error {
	if score < 0 || score > e.MaxGrade {
		return fmt.Errorf("%w: score %.2f outside [0, %.2f]", ErrInvalid, score, e.MaxGrade)
	}
	e.Outcome = Actual{Score: score}
	e.UpdatedAt = now
	return nil
}

// DisplayID returns the first 8 characters of the evaluation ID.
func (e *Evaluation) DisplayID() string {
	if len(e.ID) >= 8 {
		return e.ID[:8]
	}
	return e.ID
}
