package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

// RoadmapDetail explains one entry in a short sentence.
func RoadmapDetail(e grading.RoadmapEntry) string {
	switch e.Status {
	case domain.RoadmapNoGrades:
		return fmt.Sprintf("aim for %s on average", ScoreOn(deref(e.Required), domain.MaxGoal))
	case domain.RoadmapAchieved:
		return "goal reached, keep it up"
	case domain.RoadmapBelowGoal:
		return fmt.Sprintf("period ending at %s", ScoreOn(deref(e.Required), domain.MaxGoal))
	case domain.RoadmapDifficult:
		return fmt.Sprintf("would need %s on %d evaluation%s", ScoreOn(deref(e.Required), domain.MaxGoal), e.Remaining, plural(e.Remaining))
	default:
		return fmt.Sprintf("%s on the next %d evaluation%s", ScoreOn(deref(e.Required), domain.MaxGoal), e.Remaining, plural(e.Remaining))
	}
}

// FormatRoadmapTable renders the per-subject projection rows.
func FormatRoadmapTable(entries []grading.RoadmapEntry) string {
	headers := []string{"SUBJECT", "AVERAGE", "GOAL", "STATUS", "PLAN"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		avg := Dim("--")
		if e.CurrentAverage != nil {
			avg = Score(*e.CurrentAverage)
		}
		rows = append(rows, []string{
			SubjectName(e.Subject),
			avg,
			Score(e.Subject.Goal),
			RoadmapIndicator(e.Status),
			Dim(RoadmapDetail(e)),
		})
	}
	return RenderTableAligned(headers, rows, []bool{false, true, true})
}

// FormatRoadmap renders the roadmap with the period's elapsed time.
func FormatRoadmap(resp *app.RoadmapResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(resp.Period.Name), Dim(DateRange(resp.Period.StartDate, resp.Period.EndDate)))
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Elapsed"), RenderProgress(resp.Progress, 20))

	switch {
	case resp.Closed:
		b.WriteString(Dim("This period is over; no projection applies.") + "\n")
	case len(resp.Entries) == 0:
		b.WriteString(Dim("No subjects yet. Add one with `gradeflow subject add`.") + "\n")
	default:
		b.WriteString(FormatRoadmapTable(resp.Entries))
	}
	return RenderBox("Roadmap", b.String())
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
