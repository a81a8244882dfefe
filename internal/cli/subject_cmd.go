package cli

import (
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/service"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectUpdateCmd(app),
		newSubjectRemoveCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var coef, goal float64
	var color, icon string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Subject{
				Name:        args[0],
				Coefficient: coef,
				Goal:        goal,
				Color:       color,
				Icon:        icon,
			}
			if err := app.Subjects.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created subject %s %s\n", formatter.SubjectName(*s),
				formatter.Dim(fmt.Sprintf("(%s, coef %s, goal %s)", formatter.TruncID(s.ID),
					formatter.Scale(s.Coefficient), formatter.ScoreOn(s.Goal, domain.MaxGoal))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&coef, "coef", 1, "Coefficient (weight in the period average)")
	cmd.Flags().Float64Var(&goal, "goal", 12, "Target average out of 20")
	cmd.Flags().StringVar(&color, "color", "", "Display color as #RRGGBB")
	cmd.Flags().StringVar(&icon, "icon", "", "Optional icon shown in lists")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subjects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := app.Subjects.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(subjects) == 0 {
				fmt.Fprintln(out, formatter.Dim("No subjects yet. Add one with `gradeflow subject add NAME`."))
				return nil
			}
			fmt.Fprint(out, formatter.FormatSubjectList(subjects))
			return nil
		},
	}
}

func newSubjectUpdateCmd(app *App) *cobra.Command {
	var name, color, icon string
	var coef, goal float64

	cmd := &cobra.Command{
		Use:   "update SUBJECT",
		Short: "Update a subject's name, coefficient, goal, color or icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSubjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Subjects.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				s.Name = name
			}
			if flags.Changed("coef") {
				s.Coefficient = coef
			}
			if flags.Changed("goal") {
				s.Goal = goal
			}
			if flags.Changed("color") {
				s.Color = color
			}
			if flags.Changed("icon") {
				s.Icon = icon
			}

			if err := app.Subjects.Update(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated subject %s\n", formatter.SubjectName(*s))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&coef, "coef", 0, "New coefficient")
	cmd.Flags().Float64Var(&goal, "goal", 0, "New target average out of 20")
	cmd.Flags().StringVar(&color, "color", "", "New display color")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon")

	return cmd
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove SUBJECT",
		Aliases: []string{"rm"},
		Short:   "Remove a subject and all its evaluations",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSubjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Subjects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			evals, err := app.Evaluations.List(ctx, service.EvaluationFilter{SubjectID: id})
			if err != nil {
				return err
			}
			if err := app.Subjects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed subject %s and %d evaluation%s\n",
				formatter.Bold(s.Name), len(evals), plural(len(evals)))
			return nil
		},
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
