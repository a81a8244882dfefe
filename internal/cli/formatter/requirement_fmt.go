package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
)

// RequirementText is the one-line verdict for the next evaluation.
func RequirementText(req grading.Requirement) string {
	switch req.Status {
	case domain.RequirementAchieved:
		return StyleGreen.Render("✔ Goal secured")
	case domain.RequirementImpossible:
		if req.BestPossible != nil {
			return StyleRed.Render(fmt.Sprintf("▲ Out of reach (best %s)", ScoreOn(*req.BestPossible, domain.MaxGoal)))
		}
		return StyleRed.Render("▲ Out of reach")
	default:
		return StyleBlue.Render("◎ Target " + ScoreOn(req.Score, req.MaxGrade))
	}
}

// FormatRequirement explains what the next evaluation of a subject needs.
func FormatRequirement(resp *app.RequirementResponse) string {
	var b strings.Builder

	b.WriteString(SubjectName(resp.Subject) + Dim("  ·  "+resp.Period.Name) + "\n\n")

	current := Dim("no grades yet")
	if resp.CurrentAverage != nil {
		current = ScoreOn(*resp.CurrentAverage, domain.MaxGoal) + Dim(fmt.Sprintf(" over %d evaluation%s", resp.Count, plural(resp.Count)))
	}
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Current"), 10), current)
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Goal"), 10), ScoreOn(resp.Subject.Goal, domain.MaxGoal))
	fmt.Fprintf(&b, "%s %s\n\n", padRight(Dim("Next on"), 10), "/"+Scale(resp.Requirement.MaxGrade))

	b.WriteString(RequirementText(resp.Requirement) + "\n")
	if resp.Requirement.Status == domain.RequirementPossible {
		b.WriteString(Dim(fmt.Sprintf("A score of %s keeps the average at the goal.", ScoreOn(resp.Requirement.Score, resp.Requirement.MaxGrade))) + "\n")
	}
	return RenderBox("Next evaluation", b.String())
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
