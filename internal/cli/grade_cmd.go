package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/service"
	"github.com/spf13/cobra"
)

func newGradeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "grade",
		Aliases: []string{"grades", "eval"},
		Short:   "Record, plan and manage evaluations",
	}

	cmd.AddCommand(
		newGradeAddCmd(app),
		newGradePlanCmd(app),
		newGradeRecordCmd(app),
		newGradeListCmd(app),
		newGradeUpdateCmd(app),
		newGradeRemoveCmd(app),
	)

	return cmd
}

// gradeFlags are the evaluation fields shared by add and plan.
type gradeFlags struct {
	maxGrade float64
	typ      evalTypeFlag
	date     string
	bonus    float64
	comment  string
	period   string
}

func (f *gradeFlags) register(cmd *cobra.Command) {
	f.typ.typ = domain.EvalControl
	cmd.Flags().Float64Var(&f.maxGrade, "max", 20, "Scale of the evaluation (score is out of this)")
	cmd.Flags().Var(&f.typ, "type", "Evaluation type: "+evaluationTypeList())
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&f.bonus, "bonus", 0, "Bonus points added to the raw score")
	cmd.Flags().StringVar(&f.comment, "comment", "", "Free-form comment")
	cmd.Flags().StringVar(&f.period, "period", "", "Period (default: the active period)")
}

func (f *gradeFlags) evaluation(ctx context.Context, app *App, subject string) (*domain.Evaluation, error) {
	subjectID, err := resolveSubjectID(ctx, app, subject)
	if err != nil {
		return nil, err
	}
	periodID, err := resolvePeriodForFlag(ctx, app, f.period)
	if err != nil {
		return nil, err
	}
	date, err := parseOptionalDate(f.date)
	if err != nil {
		return nil, fmt.Errorf("--date: %w", err)
	}
	return &domain.Evaluation{
		SubjectID: subjectID,
		PeriodID:  periodID,
		Type:      f.typ.typ,
		MaxGrade:  f.maxGrade,
		Date:      date,
		Bonus:     f.bonus,
		Comment:   f.comment,
	}, nil
}

func newGradeAddCmd(app *App) *cobra.Command {
	var flags gradeFlags

	cmd := &cobra.Command{
		Use:   "add SUBJECT SCORE",
		Short: "Record a score (15 or 15/20); opens a form when run without arguments",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var e *domain.Evaluation
			switch {
			case len(args) == 0 && app.interactive():
				var err error
				if e, err = runGradeForm(ctx, app); err != nil {
					return err
				}
			case len(args) != 2:
				return fmt.Errorf("requires SUBJECT and SCORE (or run without arguments in a terminal)")
			default:
				score, scale, err := parseScore(args[1])
				if err != nil {
					return err
				}
				if e, err = flags.evaluation(ctx, app, args[0]); err != nil {
					return err
				}
				if scale > 0 {
					e.MaxGrade = scale
				}
				e.Outcome = domain.Actual{Score: score}
			}

			if err := app.Evaluations.Add(ctx, e); err != nil {
				return err
			}
			return printGradeSummary(cmd, app, "Recorded", e)
		},
	}

	flags.register(cmd)
	return cmd
}

func runGradeForm(ctx context.Context, app *App) (*domain.Evaluation, error) {
	subjects, err := app.Subjects.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("no subjects yet: add one with `gradeflow subject add NAME`")
	}
	values := newGradeFormValues()
	if err := gradeForm(subjects, values).RunWithContext(ctx); err != nil {
		return nil, err
	}
	return values.evaluation()
}

func newGradePlanCmd(app *App) *cobra.Command {
	var flags gradeFlags

	cmd := &cobra.Command{
		Use:   "plan SUBJECT [NAME]",
		Short: "Add a planned evaluation without a score",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := flags.evaluation(ctx, app, args[0])
			if err != nil {
				return err
			}
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			e.Outcome = domain.Planned{Label: label}

			if err := app.Evaluations.Add(ctx, e); err != nil {
				return err
			}
			return printGradeSummary(cmd, app, "Planned", e)
		},
	}

	flags.register(cmd)
	return cmd
}

func newGradeRecordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "record EVALUATION SCORE",
		Short: "Record the score of a planned evaluation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEvaluationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			score, scale, err := parseScore(args[1])
			if err != nil {
				return err
			}
			if scale > 0 {
				current, err := app.Evaluations.GetByID(ctx, id)
				if err != nil {
					return err
				}
				if scale != current.MaxGrade {
					return fmt.Errorf("%w: evaluation is out of %s, not %s",
						domain.ErrInvalid, formatter.Scale(current.MaxGrade), formatter.Scale(scale))
				}
			}
			e, err := app.Evaluations.Record(ctx, id, score)
			if err != nil {
				return err
			}
			return printGradeSummary(cmd, app, "Recorded", e)
		},
	}
}

func newGradeListCmd(app *App) *cobra.Command {
	var subject, period string
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List evaluations of the active period",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var filter service.EvaluationFilter
			var err error

			if subject != "" {
				if filter.SubjectID, err = resolveSubjectID(ctx, app, subject); err != nil {
					return err
				}
			}
			switch {
			case period != "":
				if filter.PeriodID, err = resolvePeriodID(ctx, app, period); err != nil {
					return err
				}
			case !all:
				active, err := app.Periods.Active(ctx)
				if err != nil {
					return err
				}
				filter.PeriodID = active.ID
			}

			evals, err := app.Evaluations.List(ctx, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(evals) == 0 {
				fmt.Fprintln(out, formatter.Dim("No evaluations. Add one with `gradeflow grade add SUBJECT SCORE`."))
				return nil
			}
			subjects, err := app.Subjects.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatEvaluationList(evals, subjects))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Only this subject")
	cmd.Flags().StringVar(&period, "period", "", "Period to list (default: the active period)")
	cmd.Flags().BoolVar(&all, "all", false, "List every period")
	cmd.MarkFlagsMutuallyExclusive("period", "all")

	return cmd
}

func newGradeUpdateCmd(app *App) *cobra.Command {
	var score, label, date, comment string
	var maxGrade, bonus float64
	var typ evalTypeFlag

	cmd := &cobra.Command{
		Use:   "update EVALUATION",
		Short: "Update an evaluation's score, scale, type, date, name, bonus or comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEvaluationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Evaluations.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("max") {
				e.MaxGrade = maxGrade
			}
			if flags.Changed("type") {
				e.Type = typ.typ
			}
			if flags.Changed("date") {
				if e.Date, err = parseOptionalDate(date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}
			if flags.Changed("bonus") {
				e.Bonus = bonus
			}
			if flags.Changed("comment") {
				e.Comment = comment
			}
			if flags.Changed("label") {
				if !e.IsPlanned() {
					return fmt.Errorf("%w: only planned evaluations have a name", domain.ErrInvalid)
				}
				e.Outcome = domain.Planned{Label: label}
			}
			if flags.Changed("score") {
				s, scale, err := parseScore(score)
				if err != nil {
					return err
				}
				if scale > 0 {
					e.MaxGrade = scale
				}
				e.Outcome = domain.Actual{Score: s}
			}

			if err := app.Evaluations.Update(ctx, e); err != nil {
				return err
			}
			return printGradeSummary(cmd, app, "Updated", e)
		},
	}

	cmd.Flags().StringVar(&score, "score", "", "New score (15 or 15/20); turns a planned evaluation into an actual one")
	cmd.Flags().Float64Var(&maxGrade, "max", 0, "New scale")
	cmd.Flags().Var(&typ, "type", "New type: "+evaluationTypeList())
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&bonus, "bonus", 0, "New bonus points")
	cmd.Flags().StringVar(&comment, "comment", "", "New comment")
	cmd.Flags().StringVar(&label, "label", "", "New name of a planned evaluation")
	cmd.MarkFlagsMutuallyExclusive("score", "label")

	return cmd
}

func newGradeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove EVALUATION",
		Aliases: []string{"rm"},
		Short:   "Remove an evaluation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEvaluationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Evaluations.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Evaluations.Delete(ctx, id); err != nil {
				return err
			}
			return printGradeSummary(cmd, app, "Removed", e)
		},
	}
}

// printGradeSummary writes the one-line confirmation and, for planned
// evaluations, the score they now need.
func printGradeSummary(cmd *cobra.Command, app *App, verb string, e *domain.Evaluation) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	subject, err := app.Subjects.GetByID(ctx, e.SubjectID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", verb, formatter.EvaluationSummary(e, subject.Name))

	if verb == "Removed" || !e.IsPlanned() {
		return nil
	}
	resp, err := app.Requirement.Requirement(ctx, requirementRequest(subject.ID, e.MaxGrade))
	if errors.Is(err, service.ErrNoActivePeriod) {
		return nil
	}
	if err != nil {
		return err
	}
	if resp.Period.ID == e.PeriodID {
		fmt.Fprintf(out, "%s %s\n", formatter.Dim(strings.Repeat(" ", 9)+"needs"), formatter.RequirementText(resp.Requirement))
	}
	return nil
}
