package grading

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

type ScoredEvaluation struct {
	Evaluation domain.Evaluation
	Normalized float64
}

type Statistics struct {
	Highest         ScoredEvaluation
	Lowest          ScoredEvaluation
	CountByType     map[domain.EvaluationType]int
	SubjectAverages []SubjectPerformance
	ActualCount     int
	PlannedCount    int
}

// ComputeStatistics summarizes the actual evaluations: extremes, counts per
// type and ranked subject averages. Subjects unknown to the list are skipped
// from the ranking. Reports false when there is no actual evaluation.
func ComputeStatistics(subjects []domain.Subject, evals []domain.Evaluation) (Statistics, bool) {
	st := Statistics{CountByType: make(map[domain.EvaluationType]int)}
	found := false
	for _, e := range evals {
		score, ok := NormalizedScore(e)
		if !ok {
			st.PlannedCount++
			continue
		}
		st.ActualCount++
		st.CountByType[e.Type]++
		if !found || score > st.Highest.Normalized {
			st.Highest = ScoredEvaluation{Evaluation: e, Normalized: score}
		}
		if !found || score < st.Lowest.Normalized {
			st.Lowest = ScoredEvaluation{Evaluation: e, Normalized: score}
		}
		found = true
	}
	if !found {
		return Statistics{}, false
	}

	for _, p := range PerformanceBySubject(subjects, evals) {
		if p.HasData {
			st.SubjectAverages = append(st.SubjectAverages, p)
		}
	}
	return st, true
}

// RecentEvaluations returns up to n evaluations, newest first.
func RecentEvaluations(evals []domain.Evaluation, n int) []domain.Evaluation {
	sorted := make([]domain.Evaluation, len(evals))
	copy(sorted, evals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// NextPlannedLabel names a new planned evaluation after the number of planned
// evaluations the subject already has.
func NextPlannedLabel(subjectID string, evals []domain.Evaluation) string {
	count := 0
	for _, e := range evals {
		if e.SubjectID == subjectID && e.IsPlanned() {
			count++
		}
	}
	return fmt.Sprintf("Future evaluation #%d", count+1)
}
