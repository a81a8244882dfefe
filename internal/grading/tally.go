package grading

import "github.com/alexanderramin/gradeflow/internal/domain"

// Tally accumulates normalized points and the number of scores folded in.
type Tally struct {
	Count  int
	Points float64
}

// Add folds one normalized score into the tally.
func (t Tally) Add(score float64) Tally {
	return Tally{Count: t.Count + 1, Points: t.Points + score}
}

// Average returns the mean score, or false for an empty tally.
func (t Tally) Average() (float64, bool) {
	if t.Count == 0 {
		return 0, false
	}
	return t.Points / float64(t.Count), true
}

// TallySubject folds every actual evaluation of the subject.
func TallySubject(subjectID string, evals []domain.Evaluation) Tally {
	var t Tally
	for _, e := range evals {
		if e.SubjectID != subjectID {
			continue
		}
		if score, ok := NormalizedScore(e); ok {
			t = t.Add(score)
		}
	}
	return t
}

// tallyBySubject folds all actual evaluations in one pass, keyed by subject.
func tallyBySubject(evals []domain.Evaluation) map[string]Tally {
	out := make(map[string]Tally)
	for _, e := range evals {
		if score, ok := NormalizedScore(e); ok {
			out[e.SubjectID] = out[e.SubjectID].Add(score)
		}
	}
	return out
}
