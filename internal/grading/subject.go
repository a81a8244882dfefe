package grading

import (
	"sort"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

// SubjectAverage returns the plain mean of the subject's normalized actual
// scores. It reports false when the subject has no actual evaluation.
func SubjectAverage(subjectID string, evals []domain.Evaluation) (float64, bool) {
	return TallySubject(subjectID, evals).Average()
}

// SubjectPerformance pairs a subject with its average.
type SubjectPerformance struct {
	Subject  domain.Subject
	Average  float64
	HasData  bool
	Count    int
	Standing domain.GoalStanding
}

// PerformanceBySubject returns every subject with its average, best first.
// Subjects without data sort last, keeping their input order.
func PerformanceBySubject(subjects []domain.Subject, evals []domain.Evaluation) []SubjectPerformance {
	tallies := tallyBySubject(evals)
	out := make([]SubjectPerformance, 0, len(subjects))
	for _, s := range subjects {
		t := tallies[s.ID]
		avg, ok := t.Average()
		out = append(out, SubjectPerformance{
			Subject:  s,
			Average:  avg,
			HasData:  ok,
			Count:    t.Count,
			Standing: Standing(avg, ok, s.Goal),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]) > sortKey(out[j])
	})
	return out
}

func sortKey(p SubjectPerformance) float64 {
	if !p.HasData {
		return -1
	}
	return p.Average
}

// Standing classifies an average against its goal: on track at or above the
// goal, satisfactory at or above 10, otherwise needing improvement.
func Standing(average float64, hasData bool, goal float64) domain.GoalStanding {
	switch {
	case !hasData:
		return domain.StandingNoData
	case average >= goal:
		return domain.StandingOnTrack
	case average >= 10:
		return domain.StandingSatisfactory
	default:
		return domain.StandingNeedsImprovement
	}
}
