package cli

import (
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *App) *cobra.Command {
	var mode chartModeFlag
	var now string
	var recent int

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash", "status"},
		Short:   "Show the active period: averages, roadmap and recent evaluations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewDashboardRequest()
			req.ChartMode = mode.mode
			if a.RecentCount > 0 {
				req.RecentCount = a.RecentCount
			}
			if cmd.Flags().Changed("recent") {
				req.RecentCount = recent
			}
			var err error
			if req.Now, err = parseNow(now); err != nil {
				return fmt.Errorf("--now: %w", err)
			}

			resp, err := a.Dashboard.Dashboard(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(resp))
			return nil
		},
	}

	cmd.Flags().Var(&mode, "scale", "Chart scale: 10, 20 or combined (default: saved preference)")
	cmd.Flags().StringVar(&now, "now", "", "Evaluate as of this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&recent, "recent", 5, "Number of recent evaluations to list")

	return cmd
}

func newRoadmapCmd(a *App) *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Project, per subject, the average needed on remaining evaluations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseNow(now)
			if err != nil {
				return fmt.Errorf("--now: %w", err)
			}
			resp, err := a.Dashboard.Roadmap(cmd.Context(), app.RoadmapRequest{Now: at})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoadmap(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func requirementRequest(subjectID string, maxGrade float64) app.RequirementRequest {
	return app.RequirementRequest{SubjectID: subjectID, MaxGrade: maxGrade}
}

func newNeedCmd(a *App) *cobra.Command {
	var maxGrade float64

	cmd := &cobra.Command{
		Use:   "need SUBJECT",
		Short: "Score needed on the next evaluation to reach the subject goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSubjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			resp, err := a.Requirement.Requirement(ctx, requirementRequest(id, maxGrade))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRequirement(resp))
			return nil
		},
	}

	cmd.Flags().Float64Var(&maxGrade, "max", 20, "Scale of the next evaluation")
	return cmd
}

func newChartCmd(a *App) *cobra.Command {
	var mode chartModeFlag
	var save bool

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Plot per-subject running averages over the active period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if save {
				if mode.mode == "" {
					return fmt.Errorf("--save needs --scale")
				}
				if err := a.Settings.SetChartMode(ctx, mode.mode); err != nil {
					return err
				}
			}
			resp, err := a.Dashboard.Chart(ctx, app.ChartRequest{ChartMode: mode.mode})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChartBox(resp.Period, resp.Chart))
			return nil
		},
	}

	cmd.Flags().Var(&mode, "scale", "Chart scale: 10, 20 or combined (default: saved preference)")
	cmd.Flags().BoolVar(&save, "save", false, "Remember --scale as the default")
	return cmd
}

func newStatsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Aliases: []string{"statistics"},
		Short:   "Highest and lowest scores, counts by type and subject ranking",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Statistics.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatistics(resp))
			return nil
		},
	}
}

func newYearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "year",
		Aliases: []string{"annual"},
		Short:   "Annual average over the periods of the active school year",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Dashboard.Annual(cmd.Context(), app.AnnualRequest{})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnnual(resp))
			return nil
		},
	}
}

func newScaleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scale [10|20|combined]",
		Short: "Show or set the default chart scale",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				var mode chartModeFlag
				if err := mode.Set(args[0]); err != nil {
					return err
				}
				if err := a.Settings.SetChartMode(ctx, mode.mode); err != nil {
					return err
				}
			}
			mode, err := a.Settings.ChartMode(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Chart scale: %s\n", formatter.Bold(formatter.ModeLabel(mode)))
			return nil
		},
	}
}
