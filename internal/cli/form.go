package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// gradeflowHuhTheme returns a huh theme built on the formatter palette.
func gradeflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// gradeFormValues is what the interactive grade form collects. Every field
// is a string so huh inputs can bind to it directly.
type gradeFormValues struct {
	SubjectID string
	Type      string
	Score     string
	MaxGrade  string
	Label     string
	Date      string
	Bonus     string
	Comment   string
}

func newGradeFormValues() *gradeFormValues {
	return &gradeFormValues{Type: string(domain.EvalControl), MaxGrade: "20"}
}

// gradeForm builds the entry form. A blank score records a planned
// evaluation named by Label.
func gradeForm(subjects []*domain.Subject, v *gradeFormValues) *huh.Form {
	subjectOpts := make([]huh.Option[string], 0, len(subjects))
	for _, s := range subjects {
		subjectOpts = append(subjectOpts, huh.NewOption(s.Name, s.ID))
	}
	typeOpts := make([]huh.Option[string], 0, len(domain.EvaluationTypes))
	for _, t := range domain.EvaluationTypes {
		typeOpts = append(typeOpts, huh.NewOption(string(t), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjectOpts...).
				Value(&v.SubjectID),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOpts...).
				Value(&v.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Score (blank for a planned evaluation)").
				Placeholder("15 or 15/20").
				Value(&v.Score).
				Validate(validateOptionalScore),
			huh.NewInput().
				Title("Out of").
				Placeholder("20").
				Value(&v.MaxGrade).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Name (planned only, blank to number it)").
				Value(&v.Label),
			huh.NewInput().
				Title("Date (YYYY-MM-DD, blank for today)").
				Placeholder("2025-10-14").
				Value(&v.Date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Bonus points").
				Placeholder("0").
				Value(&v.Bonus).
				Validate(validateOptionalNonNegative),
			huh.NewInput().
				Title("Comment").
				Value(&v.Comment),
		),
	).WithTheme(gradeflowHuhTheme()).WithShowHelp(false)
}

// evaluation converts the collected values. Validation of ranges is left to
// the service.
func (v *gradeFormValues) evaluation() (*domain.Evaluation, error) {
	typ, ok := domain.ParseEvaluationType(v.Type)
	if !ok {
		return nil, fmt.Errorf("unknown evaluation type %q", v.Type)
	}
	maxGrade := 20.0
	if strings.TrimSpace(v.MaxGrade) != "" {
		m, err := strconv.ParseFloat(strings.TrimSpace(v.MaxGrade), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scale %q", v.MaxGrade)
		}
		maxGrade = m
	}
	date, err := parseOptionalDate(v.Date)
	if err != nil {
		return nil, err
	}
	var bonus float64
	if strings.TrimSpace(v.Bonus) != "" {
		if bonus, err = strconv.ParseFloat(strings.TrimSpace(v.Bonus), 64); err != nil {
			return nil, fmt.Errorf("invalid bonus %q", v.Bonus)
		}
	}

	e := &domain.Evaluation{
		SubjectID: v.SubjectID,
		Type:      typ,
		MaxGrade:  maxGrade,
		Date:      date,
		Bonus:     bonus,
		Comment:   v.Comment,
		Outcome:   domain.Planned{Label: strings.TrimSpace(v.Label)},
	}
	if strings.TrimSpace(v.Score) != "" {
		score, scale, err := parseScore(v.Score)
		if err != nil {
			return nil, err
		}
		if scale > 0 {
			e.MaxGrade = scale
		}
		e.Outcome = domain.Actual{Score: score}
	}
	return e, nil
}

func validateOptionalScore(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, _, err := parseScore(s)
	return err
}

func validatePositiveFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateOptionalNonNegative(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter zero or a positive number")
	}
	return nil
}

func validateOptionalDate(s string) error {
	_, err := parseOptionalDate(s)
	return err
}
