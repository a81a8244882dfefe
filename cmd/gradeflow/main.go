package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gradeflow/internal/cli"
	"github.com/alexanderramin/gradeflow/internal/config"
	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/alexanderramin/gradeflow/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	periodRepo := repository.NewSQLitePeriodRepo(database)
	evaluationRepo := repository.NewSQLiteEvaluationRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel)
	}

	app := &cli.App{
		Subjects:    service.NewSubjectService(subjectRepo),
		Periods:     service.NewPeriodService(periodRepo, settingsRepo, uow),
		Evaluations: service.NewEvaluationService(evaluationRepo, uow),
		Settings:    service.NewSettingsService(settingsRepo, cfg.ChartMode),
		Dashboard:   service.NewDashboardService(subjectRepo, periodRepo, evaluationRepo, settingsRepo, cfg.ChartMode, observer),
		Requirement: service.NewRequirementService(subjectRepo, periodRepo, evaluationRepo, settingsRepo, observer),
		Statistics:  service.NewStatisticsService(subjectRepo, periodRepo, evaluationRepo, settingsRepo, observer),
		Backup:      service.NewBackupService(subjectRepo, periodRepo, evaluationRepo, settingsRepo, uow, observer),
		RecentCount: cfg.RecentCount,
	}

	// Forms and the TUI only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
