package formatter

import (
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

// FormatSubjectList renders subjects with their weights and goals.
func FormatSubjectList(subjects []*domain.Subject) string {
	headers := []string{"ID", "SUBJECT", "COEF", "GOAL", "ICON"}
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		icon := Dim("--")
		if s.Icon != "" {
			icon = s.Icon
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			SubjectName(*s),
			Scale(s.Coefficient),
			Score(s.Goal),
			icon,
		})
	}
	return RenderTableAligned(headers, rows, []bool{false, false, true, true})
}

// FormatPeriodList renders periods in start order and marks the active one.
func FormatPeriodList(periods []*domain.Period, activeID string) string {
	headers := []string{"", "ID", "PERIOD", "DATES", "GOAL"}
	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		marker := " "
		if p.ID == activeID {
			marker = StyleGreen.Render("●")
		}
		goal := Dim("calculated")
		if p.Goal != nil {
			goal = Score(*p.Goal)
		}
		rows = append(rows, []string{
			marker,
			TruncID(p.ID),
			Bold(p.Name),
			DateRange(p.StartDate, p.EndDate),
			goal,
		})
	}
	return RenderTable(headers, rows)
}

// FormatEvaluationList renders evaluations with their subject and result.
func FormatEvaluationList(evals []*domain.Evaluation, subjects []*domain.Subject) string {
	names := make(map[string]domain.Subject, len(subjects))
	for _, s := range subjects {
		names[s.ID] = *s
	}

	headers := []string{"ID", "DATE", "SUBJECT", "TYPE", "TITLE", "RESULT", "COMMENT"}
	rows := make([][]string, 0, len(evals))
	for _, e := range evals {
		subject := Dim("unknown")
		if s, ok := names[e.SubjectID]; ok {
			subject = SubjectName(s)
		}
		title := Dim("--")
		if e.IsPlanned() {
			title = e.Title()
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			ShortDate(e.Date),
			subject,
			string(e.Type),
			title,
			EvaluationResult(*e),
			Dim(e.Comment),
		})
	}
	return RenderTable(headers, rows)
}

// EvaluationSummary is the one-line confirmation after a grade command.
func EvaluationSummary(e *domain.Evaluation, subject string) string {
	return fmt.Sprintf("%s %s · %s · %s", TruncID(e.ID), Bold(subject), e.Title(), EvaluationResult(*e))
}
