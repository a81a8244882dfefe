package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

const scoreBarWidth = 20

// FormatDashboard renders the full period overview: headline average,
// per-subject performance, roadmap, annual average and recent evaluations.
func FormatDashboard(resp *app.DashboardResponse) string {
	var b strings.Builder

	b.WriteString(FormatDashboardHeadline(resp))
	b.WriteString("\n")
	b.WriteString(Header("Subjects") + "\n")
	b.WriteString(FormatPerformance(resp.Performance))

	b.WriteString("\n" + Header("Roadmap") + "\n")
	switch {
	case resp.Closed:
		b.WriteString(Dim("This period is over; no projection applies.") + "\n")
	case len(resp.Roadmap) == 0:
		b.WriteString(Dim("No subjects yet.") + "\n")
	default:
		b.WriteString(FormatRoadmapTable(resp.Roadmap))
	}

	if resp.Annual.Available {
		b.WriteString("\n" + Header("School year "+resp.Annual.Year.String()) + "\n")
		fmt.Fprintf(&b, "%s %s %s\n", Dim("Annual average"), Bold(ScoreOn(resp.Annual.Average, domain.MaxGoal)),
			Dim(fmt.Sprintf("over %d periods", len(resp.Annual.Periods))))
	}

	b.WriteString("\n" + Header("Recent") + "\n")
	b.WriteString(FormatRecent(resp.Recent, resp.Subjects, resp.Targets))

	return RenderBox("Dashboard", b.String())
}

// FormatDashboardHeadline renders the period line, elapsed time and the
// average against the goal.
func FormatDashboardHeadline(resp *app.DashboardResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(resp.Period.Name), Dim(DateRange(resp.Period.StartDate, resp.Period.EndDate)))
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Elapsed"), 9), RenderProgress(resp.Progress, scoreBarWidth))

	goalNote := "calculated"
	if resp.GoalExplicit {
		goalNote = "set for the period"
	}
	fmt.Fprintf(&b, "%s %s  %s %s\n", padRight(Dim("Average"), 9),
		RenderScoreBar(resp.Average, resp.Goal, resp.Standing, scoreBarWidth),
		StyledAverage(resp.Average, resp.HasData, resp.Standing),
		StandingIndicator(resp.Standing))
	fmt.Fprintf(&b, "%s %s %s\n", padRight(Dim("Goal"), 9), ScoreOn(resp.Goal, domain.MaxGoal), Dim("("+goalNote+")"))
	return b.String()
}

// FormatPerformance renders subjects best first with their averages.
func FormatPerformance(perf []grading.SubjectPerformance) string {
	if len(perf) == 0 {
		return Dim("No subjects yet. Add one with `gradeflow subject add`.") + "\n"
	}
	headers := []string{"SUBJECT", "COEF", "AVERAGE", "GOAL", "", "STANDING"}
	rows := make([][]string, 0, len(perf))
	for _, p := range perf {
		bar := Dim("--")
		if p.HasData {
			bar = RenderScoreBar(p.Average, p.Subject.Goal, p.Standing, 10)
		}
		rows = append(rows, []string{
			SubjectName(p.Subject),
			Scale(p.Subject.Coefficient),
			StyledAverage(p.Average, p.HasData, p.Standing),
			Score(p.Subject.Goal),
			bar,
			StandingIndicator(p.Standing),
		})
	}
	return RenderTableAligned(headers, rows, []bool{false, true, true, true})
}

// FormatRecent lists recent evaluations; planned ones show what they need.
func FormatRecent(evals []domain.Evaluation, subjects []domain.Subject, targets map[string]grading.Requirement) string {
	if len(evals) == 0 {
		return Dim("No evaluations yet. Add one with `gradeflow grade add`.") + "\n"
	}
	names := subjectIndex(subjects)
	var b strings.Builder
	for _, e := range evals {
		subj, ok := names[e.SubjectID]
		name := Dim("unknown subject")
		if ok {
			name = SubjectName(subj)
		}
		result := EvaluationResult(e)
		if req, ok := targets[e.ID]; ok {
			result = RequirementText(req)
		}
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			Dim(ShortDate(e.Date)), padRight(name, 20), padRight(e.Title(), 22), result)
	}
	return b.String()
}

func subjectIndex(subjects []domain.Subject) map[string]domain.Subject {
	idx := make(map[string]domain.Subject, len(subjects))
	for _, s := range subjects {
		idx[s.ID] = s
	}
	return idx
}
