package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/alexanderramin/gradeflow/internal/repository"
)

type requirementService struct {
	src      snapshotSource
	observer UseCaseObserver
}

func NewRequirementService(
	subjects repository.SubjectRepo,
	periods repository.PeriodRepo,
	evaluations repository.EvaluationRepo,
	settings repository.SettingsRepo,
	observers ...UseCaseObserver,
) RequirementService {
	return &requirementService{
		src: snapshotSource{
			subjects:    subjects,
			periods:     periods,
			evaluations: evaluations,
			settings:    settings,
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

// Requirement computes the score needed on the next evaluation of a subject
// for its average over the active period to reach the subject goal.
func (s *requirementService) Requirement(ctx context.Context, req app.RequirementRequest) (resp *app.RequirementResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"subject_id": req.SubjectID}
	defer observeUseCase(ctx, s.observer, "requirement", startedAt, &err, fields)

	subject, err := s.src.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	snap, err := s.src.load(ctx, utcNow())
	if err != nil {
		return nil, err
	}
	active, err := requireActive(snap)
	if err != nil {
		return nil, err
	}

	maxGrade := req.MaxGrade
	if maxGrade == 0 {
		maxGrade = domain.MaxGoal
	}
	evals := grading.FilterByPeriod(snap.Evaluations, active.ID)
	tally := grading.TallySubject(subject.ID, evals)

	resp = &app.RequirementResponse{
		Subject:     *subject,
		Period:      *active,
		Count:       tally.Count,
		Requirement: grading.RequiredScore(subject.Goal, tally, maxGrade),
	}
	if avg, ok := tally.Average(); ok {
		resp.CurrentAverage = &avg
	}
	fields["status"] = string(resp.Requirement.Status)
	return resp, nil
}

type statisticsService struct {
	src      snapshotSource
	observer UseCaseObserver
}

func NewStatisticsService(
	subjects repository.SubjectRepo,
	periods repository.PeriodRepo,
	evaluations repository.EvaluationRepo,
	settings repository.SettingsRepo,
	observers ...UseCaseObserver,
) StatisticsService {
	return &statisticsService{
		src: snapshotSource{
			subjects:    subjects,
			periods:     periods,
			evaluations: evaluations,
			settings:    settings,
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

// Statistics summarizes the active period's actual evaluations.
func (s *statisticsService) Statistics(ctx context.Context) (resp *app.StatisticsResponse, err error) {
	startedAt := time.Now().UTC()
	defer observeUseCase(ctx, s.observer, "statistics", startedAt, &err, nil)

	snap, err := s.src.load(ctx, utcNow())
	if err != nil {
		return nil, err
	}
	active, err := requireActive(snap)
	if err != nil {
		return nil, err
	}
	stats, ok := grading.ComputeStatistics(snap.Subjects, grading.FilterByPeriod(snap.Evaluations, active.ID))
	return &app.StatisticsResponse{
		Period:     *active,
		Subjects:   snap.Subjects,
		HasData:    ok,
		Statistics: stats,
	}, nil
}
