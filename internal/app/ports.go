package app

import (
	"context"

	"github.com/alexanderramin/gradeflow/internal/importer"
)

type DashboardUseCase interface {
	Dashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type RoadmapUseCase interface {
	Roadmap(ctx context.Context, req RoadmapRequest) (*RoadmapResponse, error)
}

type ChartUseCase interface {
	Chart(ctx context.Context, req ChartRequest) (*ChartResponse, error)
}

type AnnualUseCase interface {
	Annual(ctx context.Context, req AnnualRequest) (*AnnualResponse, error)
}

type RequirementUseCase interface {
	Requirement(ctx context.Context, req RequirementRequest) (*RequirementResponse, error)
}

type StatisticsUseCase interface {
	Statistics(ctx context.Context) (*StatisticsResponse, error)
}

type BackupUseCase interface {
	Export(ctx context.Context) (*importer.Backup, error)
	Import(ctx context.Context, backup *importer.Backup, replace bool) (*ImportResult, error)
}
