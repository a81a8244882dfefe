package cli

import (
	"github.com/alexanderramin/gradeflow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Subjects    service.SubjectService
	Periods     service.PeriodService
	Evaluations service.EvaluationService
	Settings    service.SettingsService
	Dashboard   service.DashboardService
	Requirement service.RequirementService
	Statistics  service.StatisticsService
	Backup      service.BackupService

	// IsInteractive reports whether stdin is a terminal. Commands fall back
	// to huh forms for missing arguments only when it returns true.
	IsInteractive func() bool

	// RecentCount is how many evaluations the dashboard lists.
	RecentCount int
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "gradeflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gradeflow",
		Short:         "Grade tracker with weighted averages and goal projections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSubjectCmd(app),
		newPeriodCmd(app),
		newGradeCmd(app),
		newDashboardCmd(app),
		newRoadmapCmd(app),
		newNeedCmd(app),
		newChartCmd(app),
		newStatsCmd(app),
		newYearCmd(app),
		newScaleCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newTUICmd(app),
	)

	return root
}
