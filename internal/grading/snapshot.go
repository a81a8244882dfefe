package grading

import (
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/mitchellh/hashstructure/v2"
)

// Snapshot is an immutable view of everything the engine computes from.
type Snapshot struct {
	Subjects       []domain.Subject
	Periods        []domain.Period
	Evaluations    []domain.Evaluation
	ActivePeriodID string
}

// ActivePeriod returns the active period, or nil when none is set or it no
// longer exists.
func (s Snapshot) ActivePeriod() *domain.Period {
	for i := range s.Periods {
		if s.Periods[i].ID == s.ActivePeriodID {
			p := s.Periods[i]
			return &p
		}
	}
	return nil
}

// Fingerprint hashes the snapshot content. Collections hash as sets, so two
// snapshots holding the same records in a different order share a
// fingerprint.
func (s Snapshot) Fingerprint() (uint64, error) {
	h, err := hashstructure.Hash(newSnapshotKey(s), hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("hashing snapshot: %w", err)
	}
	return h, nil
}

type snapshotKey struct {
	Subjects       []subjectKey    `hash:"set"`
	Periods        []periodKey     `hash:"set"`
	Evaluations    []evaluationKey `hash:"set"`
	ActivePeriodID string
}

type subjectKey struct {
	ID, Name, Color, Icon string
	Coefficient, Goal     float64
}

type periodKey struct {
	ID, Name   string
	Start, End int64
	HasGoal    bool
	Goal       float64
}

type evaluationKey struct {
	ID, SubjectID, PeriodID, Type, Comment, Label string
	MaxGrade, Bonus, Score                        float64
	Planned                                       bool
	Date                                          int64
}

func newSnapshotKey(s Snapshot) snapshotKey {
	k := snapshotKey{ActivePeriodID: s.ActivePeriodID}
	for _, sub := range s.Subjects {
		k.Subjects = append(k.Subjects, subjectKey{
			ID: sub.ID, Name: sub.Name, Color: sub.Color, Icon: sub.Icon,
			Coefficient: sub.Coefficient, Goal: sub.Goal,
		})
	}
	for _, p := range s.Periods {
		pk := periodKey{ID: p.ID, Name: p.Name, Start: p.StartDate.UnixNano(), End: p.EndDate.UnixNano()}
		if p.Goal != nil {
			pk.HasGoal, pk.Goal = true, *p.Goal
		}
		k.Periods = append(k.Periods, pk)
	}
	for _, e := range s.Evaluations {
		ek := evaluationKey{
			ID: e.ID, SubjectID: e.SubjectID, PeriodID: e.PeriodID, Type: string(e.Type),
			Comment: e.Comment, MaxGrade: e.MaxGrade, Bonus: e.Bonus, Date: e.Date.UnixNano(),
		}
		if score, ok := e.ActualScore(); ok {
			ek.Score = score
		} else {
			ek.Label, _ = e.PlannedLabel()
			ek.Planned = true
		}
		k.Evaluations = append(k.Evaluations, ek)
	}
	return k
}
