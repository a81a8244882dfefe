package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/service"
	"github.com/spf13/cobra"
)

func newPeriodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "period",
		Aliases: []string{"periods"},
		Short:   "Manage grading periods",
	}

	cmd.AddCommand(
		newPeriodAddCmd(app),
		newPeriodListCmd(app),
		newPeriodUpdateCmd(app),
		newPeriodRemoveCmd(app),
		newPeriodUseCmd(app),
	)

	return cmd
}

func newPeriodAddCmd(app *App) *cobra.Command {
	var start, end string
	var goal float64

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a period (the first one becomes active)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseOptionalDate(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endDate, err := parseOptionalDate(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			p := &domain.Period{Name: args[0], StartDate: startDate, EndDate: endDate}
			if cmd.Flags().Changed("goal") {
				p.Goal = domain.Float64Ptr(goal)
			}

			ctx := cmd.Context()
			if err := app.Periods.Create(ctx, p); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created period %s %s\n", formatter.Bold(p.Name),
				formatter.Dim(fmt.Sprintf("(%s, %s)", formatter.TruncID(p.ID), formatter.DateRange(p.StartDate, p.EndDate))))
			if active, err := app.Periods.Active(ctx); err == nil && active.ID == p.ID {
				fmt.Fprintln(out, formatter.StyleGreen.Render("● Now the active period"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date, inclusive (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&goal, "goal", 0, "Target average out of 20 (defaults to the coefficient-weighted subject goals)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPeriodListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List periods; the active one is marked",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			periods, err := app.Periods.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(periods) == 0 {
				fmt.Fprintln(out, formatter.Dim("No periods yet. Add one with `gradeflow period add NAME --start --end`."))
				return nil
			}
			activeID := ""
			if active, err := app.Periods.Active(ctx); err == nil {
				activeID = active.ID
			} else if !errors.Is(err, service.ErrNoActivePeriod) {
				return err
			}
			fmt.Fprint(out, formatter.FormatPeriodList(periods, activeID))
			return nil
		},
	}
}

func newPeriodUpdateCmd(app *App) *cobra.Command {
	var name, start, end string
	var goal float64
	var clearGoal bool

	cmd := &cobra.Command{
		Use:   "update PERIOD",
		Short: "Update a period's name, dates or goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePeriodID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Periods.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("start") {
				if p.StartDate, err = parseOptionalDate(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}
			if flags.Changed("end") {
				if p.EndDate, err = parseOptionalDate(end); err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}
			switch {
			case clearGoal:
				p.Goal = nil
			case flags.Changed("goal"):
				p.Goal = domain.Float64Ptr(goal)
			}

			if err := app.Periods.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated period %s\n", formatter.Bold(p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&goal, "goal", 0, "Explicit target average out of 20")
	cmd.Flags().BoolVar(&clearGoal, "clear-goal", false, "Drop the explicit goal and use the calculated one")
	cmd.MarkFlagsMutuallyExclusive("goal", "clear-goal")

	return cmd
}

func newPeriodRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove PERIOD",
		Aliases: []string{"rm"},
		Short:   "Remove a period and all its evaluations",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePeriodID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Periods.GetByID(ctx, id)
			if err != nil {
				return err
			}
			evals, err := app.Evaluations.List(ctx, service.EvaluationFilter{PeriodID: id})
			if err != nil {
				return err
			}
			if err := app.Periods.Delete(ctx, id); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed period %s and %d evaluation%s\n",
				formatter.Bold(p.Name), len(evals), plural(len(evals)))
			if active, err := app.Periods.Active(ctx); err == nil {
				fmt.Fprintf(out, "Active period: %s\n", formatter.Bold(active.Name))
			}
			return nil
		},
	}
}

func newPeriodUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use PERIOD",
		Short: "Make a period the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePeriodID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Periods.SetActive(ctx, id); err != nil {
				return err
			}
			p, err := app.Periods.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active period: %s %s\n", formatter.Bold(p.Name),
				formatter.Dim(formatter.DateRange(p.StartDate, p.EndDate)))
			return nil
		},
	}
}
