package cli

import (
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every subject, period and evaluation to a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backup.ExportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d subjects, %d periods and %d evaluations to %s\n",
				len(b.Subjects), len(b.Periods), len(b.Grades), formatter.Bold(args[0]))
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON backup, merging by default",
		Long: "Load a JSON backup. The whole file is validated before anything is written.\n" +
			"Without --replace the records are added next to the existing ones and\n" +
			"identifiers must not collide; with --replace existing data is wiped first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Backup.ImportFile(cmd.Context(), args[0], replace)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			verb := "Merged"
			if res.Replaced {
				verb = "Replaced data with"
			}
			fmt.Fprintf(out, "%s %d subjects, %d periods and %d evaluations\n", verb, res.Subjects, res.Periods, res.Grades)
			if res.ActivePeriodID != "" {
				if p, err := app.Periods.GetByID(cmd.Context(), res.ActivePeriodID); err == nil {
					fmt.Fprintf(out, "Active period: %s\n", formatter.Bold(p.Name))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Wipe existing data before importing")
	return cmd
}
