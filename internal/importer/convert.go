package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

const dateLayout = "2006-01-02"

// Convert turns a validated backup into domain records stamped with now.
// Call ValidateBackup first; Convert only fails on unparseable dates.
// Without an active period in the file, the period containing now is chosen,
// else the first one.
func Convert(b *Backup, now time.Time) (grading.Snapshot, error) {
	var snap grading.Snapshot

	for _, s := range b.Subjects {
		snap.Subjects = append(snap.Subjects, *convertSubject(s, now))
	}

	for _, p := range b.Periods {
		start, err := ParseDate(p.StartDate)
		if err != nil {
			return grading.Snapshot{}, fmt.Errorf("period %q: %w", p.ID, err)
		}
		end, err := ParseDate(p.EndDate)
		if err != nil {
			return grading.Snapshot{}, fmt.Errorf("period %q: %w", p.ID, err)
		}
		snap.Periods = append(snap.Periods, *convertPeriod(p, start, end, now))
	}

	for _, g := range b.Grades {
		date, err := ParseDate(g.Date)
		if err != nil {
			return grading.Snapshot{}, fmt.Errorf("grade %q: %w", g.ID, err)
		}
		snap.Evaluations = append(snap.Evaluations, *convertGrade(g, date, now))
	}

	snap.ActivePeriodID = b.ActivePeriodID
	if snap.ActivePeriodID == "" {
		if p := grading.CurrentPeriod(snap.Periods, now); p != nil {
			snap.ActivePeriodID = p.ID
		}
	}
	return snap, nil
}

// FromSnapshot builds the export document. Dates are written as RFC 3339
// timestamps at UTC midnight, which the web app reads back.
func FromSnapshot(s grading.Snapshot) *Backup {
	b := &Backup{
		Version:        BackupVersion,
		Subjects:       make([]SubjectRecord, 0, len(s.Subjects)),
		Periods:        make([]PeriodRecord, 0, len(s.Periods)),
		Grades:         make([]GradeRecord, 0, len(s.Evaluations)),
		ActivePeriodID: s.ActivePeriodID,
	}
	for _, sub := range s.Subjects {
		b.Subjects = append(b.Subjects, SubjectRecord{
			ID:          sub.ID,
			Name:        sub.Name,
			Coefficient: sub.Coefficient,
			Color:       sub.Color,
			Goal:        sub.Goal,
			Icon:        sub.Icon,
		})
	}
	for _, p := range s.Periods {
		b.Periods = append(b.Periods, PeriodRecord{
			ID:        p.ID,
			Name:      p.Name,
			StartDate: p.StartDate.UTC().Format(time.RFC3339),
			EndDate:   p.EndDate.UTC().Format(time.RFC3339),
			Goal:      p.Goal,
		})
	}
	for _, e := range s.Evaluations {
		g := GradeRecord{
			ID:        e.ID,
			SubjectID: e.SubjectID,
			PeriodID:  e.PeriodID,
			MaxGrade:  e.MaxGrade,
			Type:      string(e.Type),
			Date:      e.Date.UTC().Format(time.RFC3339),
			Comment:   e.Comment,
		}
		if score, ok := e.ActualScore(); ok {
			g.Grade = domain.Float64Ptr(score)
		} else {
			g.Name, _ = e.PlannedLabel()
		}
		if e.Bonus != 0 {
			g.Bonus = domain.Float64Ptr(e.Bonus)
		}
		b.Grades = append(b.Grades, g)
	}
	return b
}

func convertSubject(s SubjectRecord, now time.Time) *domain.Subject {
	return &domain.Subject{
		ID:          s.ID,
		Name:        s.Name,
		Coefficient: s.Coefficient,
		Color:       s.Color,
		Goal:        s.Goal,
		Icon:        s.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func convertPeriod(p PeriodRecord, start, end, now time.Time) *domain.Period {
	return &domain.Period{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: start,
		EndDate:   end,
		Goal:      p.Goal,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func convertGrade(g GradeRecord, date, now time.Time) *domain.Evaluation {
	e := &domain.Evaluation{
		ID:        g.ID,
		SubjectID: g.SubjectID,
		PeriodID:  g.PeriodID,
		Type:      domain.EvaluationType(g.Type),
		MaxGrade:  g.MaxGrade,
		Date:      date,
		Comment:   g.Comment,
		Bonus:     domain.Float64FromPtrWithDefault(0, g.Bonus),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if g.Grade != nil {
		e.Outcome = domain.Actual{Score: *g.Grade}
	} else {
		e.Outcome = domain.Planned{Label: g.Name}
	}
	return e
}
