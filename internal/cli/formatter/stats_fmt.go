package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

// FormatStatistics renders extremes, type counts and the subject ranking.
func FormatStatistics(resp *app.StatisticsResponse) string {
	if !resp.HasData {
		return RenderBox("Statistics", Dim("No recorded evaluations in "+resp.Period.Name+" yet.")+"\n")
	}
	st := resp.Statistics
	names := subjectIndex(resp.Subjects)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(resp.Period.Name),
		Dim(fmt.Sprintf("%d recorded, %d planned", st.ActualCount, st.PlannedCount)))

	fmt.Fprintf(&b, "%s %s\n", padRight(StyleGreen.Render("▲ Highest"), 11), extremeLine(st.Highest, names))
	fmt.Fprintf(&b, "%s %s\n", padRight(StyleRed.Render("▼ Lowest"), 11), extremeLine(st.Lowest, names))

	b.WriteString("\n" + Header("By type") + "\n")
	for _, t := range domain.EvaluationTypes {
		n := st.CountByType[t]
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %d\n", padRight(string(t), 14), n)
	}

	b.WriteString("\n" + Header("Ranking") + "\n")
	headers := []string{"#", "SUBJECT", "AVERAGE", "COUNT"}
	rows := make([][]string, 0, len(st.SubjectAverages))
	for i, p := range st.SubjectAverages {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			SubjectName(p.Subject),
			StyledAverage(p.Average, p.HasData, p.Standing),
			fmt.Sprintf("%d", p.Count),
		})
	}
	b.WriteString(RenderTableAligned(headers, rows, []bool{true, false, true, true}))
	return RenderBox("Statistics", b.String())
}

func extremeLine(se grading.ScoredEvaluation, names map[string]domain.Subject) string {
	name := "unknown subject"
	if s, ok := names[se.Evaluation.SubjectID]; ok {
		name = s.Name
	}
	return fmt.Sprintf("%s %s %s", Bold(ScoreOn(se.Normalized, domain.MaxGoal)), name,
		Dim(fmt.Sprintf("(%s, %s, %s)", EvaluationResult(se.Evaluation), se.Evaluation.Type, ShortDate(se.Evaluation.Date))))
}

// FormatAnnual renders the school-year average or why it is unavailable.
func FormatAnnual(resp *app.AnnualResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", Bold("School year "+resp.Annual.Year.String()), Dim("from "+resp.Active.Name))
	if !resp.Annual.Available {
		b.WriteString(Dim("An annual average needs at least two periods in the same school year.") + "\n")
		return RenderBox("Year", b.String())
	}
	for _, p := range resp.Annual.Periods {
		marker := "  "
		if p.ID == resp.Active.ID {
			marker = StyleGreen.Render("● ")
		}
		fmt.Fprintf(&b, "%s%s  %s\n", marker, padRight(p.Name, 16), Dim(DateRange(p.StartDate, p.EndDate)))
	}
	fmt.Fprintf(&b, "\n%s %s\n", Dim("Annual average"), Bold(ScoreOn(resp.Annual.Average, domain.MaxGoal)))
	return RenderBox("Year", b.String())
}
