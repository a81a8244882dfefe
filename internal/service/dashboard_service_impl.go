package service

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/gradeflow/internal/app"
	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/grading"
	"github.com/alexanderramin/gradeflow/internal/repository"
)

type dashboardKey struct {
	fingerprint uint64
	now         time.Time
	mode        domain.ChartMode
	recent      int
}

type dashboardService struct {
	src         snapshotSource
	defaultMode domain.ChartMode
	observer    UseCaseObserver
	now         func() time.Time

	mu       sync.Mutex
	memoKey  dashboardKey
	memo     *app.DashboardResponse
	memoHits int
}

func NewDashboardService(
	subjects repository.SubjectRepo,
	periods repository.PeriodRepo,
	evaluations repository.EvaluationRepo,
	settings repository.SettingsRepo,
	defaultMode domain.ChartMode,
	observers ...UseCaseObserver,
) DashboardService {
	if _, ok := domain.ParseChartMode(string(defaultMode)); !ok {
		defaultMode = domain.ChartScale20
	}
	return &dashboardService{
		src: snapshotSource{
			subjects:    subjects,
			periods:     periods,
			evaluations: evaluations,
			settings:    settings,
		},
		defaultMode: defaultMode,
		observer:    useCaseObserverOrNoop(observers),
		now:         utcNow,
	}
}

// resolveNow returns the report time truncated to the minute, so repeated
// reports within a minute share the memo.
func (s *dashboardService) resolveNow(now *time.Time) time.Time {
	if now != nil {
		return now.UTC().Truncate(time.Minute)
	}
	return s.now().Truncate(time.Minute)
}

func (s *dashboardService) resolveMode(ctx context.Context, requested domain.ChartMode) (domain.ChartMode, error) {
	if mode, ok := domain.ParseChartMode(string(requested)); ok {
		return mode, nil
	}
	return storedChartMode(ctx, s.src.settings, s.defaultMode)
}

func (s *dashboardService) Dashboard(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observeUseCase(ctx, s.observer, "dashboard", startedAt, &err, fields)

	now := s.resolveNow(req.Now)
	snap, err := s.src.load(ctx, now)
	if err != nil {
		return nil, err
	}
	active, err := requireActive(snap)
	if err != nil {
		return nil, err
	}
	mode, err := s.resolveMode(ctx, req.ChartMode)
	if err != nil {
		return nil, err
	}
	recent := req.RecentCount
	if recent <= 0 {
		recent = app.NewDashboardRequest().RecentCount
	}
	fields["period_id"] = active.ID
	fields["chart_mode"] = string(mode)

	fingerprint, err := snap.Fingerprint()
	if err != nil {
		return nil, err
	}
	key := dashboardKey{fingerprint: fingerprint, now: now, mode: mode, recent: recent}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memo != nil && s.memoKey == key {
		s.memoHits++
		fields["memo_hit"] = true
		return cloneDashboard(s.memo), nil
	}

	resp = buildDashboard(snap, *active, now, mode, recent)
	s.memoKey = key
	s.memo = resp
	fields["memo_hit"] = false
	return cloneDashboard(resp), nil
}

// cloneDashboard returns a copy of r whose slices, maps and report values
// are not shared with the memo.
func cloneDashboard(r *app.DashboardResponse) *app.DashboardResponse {
	out := *r
	out.Period.Goal = clonePtr(r.Period.Goal)
	out.Subjects = slices.Clone(r.Subjects)
	out.Performance = slices.Clone(r.Performance)
	out.Recent = slices.Clone(r.Recent)
	out.Annual.Periods = slices.Clone(r.Annual.Periods)
	out.Targets = maps.Clone(r.Targets)
	for i := range out.Targets {
		t := out.Targets[i]
		t.BestPossible = clonePtr(t.BestPossible)
		out.Targets[i] = t
	}
	out.Roadmap = slices.Clone(r.Roadmap)
	for i := range out.Roadmap {
		out.Roadmap[i].CurrentAverage = clonePtr(out.Roadmap[i].CurrentAverage)
		out.Roadmap[i].Required = clonePtr(out.Roadmap[i].Required)
	}
	out.Chart.Series = slices.Clone(r.Chart.Series)
	for i := range out.Chart.Series {
		out.Chart.Series[i].Points = slices.Clone(out.Chart.Series[i].Points)
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func buildDashboard(snap grading.Snapshot, active domain.Period, now time.Time, mode domain.ChartMode, recent int) *app.DashboardResponse {
	evals := grading.FilterByPeriod(snap.Evaluations, active.ID)
	subjects := snap.Subjects
	goal := grading.EffectivePeriodGoal(&active, subjects)
	average := grading.PeriodAverage(subjects, evals)
	hasData := hasActual(evals)

	resp := &app.DashboardResponse{
		GeneratedAt:  now,
		Period:       active,
		Subjects:     subjects,
		Goal:         goal,
		GoalExplicit: active.HasGoal(),
		Average:      average,
		HasData:      hasData,
		Standing:     grading.Standing(average, hasData, goal),
		Progress:     grading.PeriodProgress(now, active.StartDate, active.EndDate),
		Closed:       grading.PeriodClosed(now, active.StartDate, active.EndDate),
		Performance:  grading.PerformanceBySubject(subjects, evals),
		Roadmap:      grading.BuildRoadmap(now, &active, subjects, evals),
		Chart:        grading.BuildChart(subjects, evals, mode),
		Annual:       grading.AnnualAverage(active, snap.Periods, subjects, snap.Evaluations),
		Recent:       grading.RecentEvaluations(evals, recent),
		Targets:      map[string]grading.Requirement{},
	}

	for _, e := range resp.Recent {
		if !e.IsPlanned() {
			continue
		}
		for _, subj := range subjects {
			if subj.ID == e.SubjectID {
				resp.Targets[e.ID] = grading.RequiredScoreForSubject(subj, evals, e.MaxGrade)
				break
			}
		}
	}
	return resp
}

func (s *dashboardService) Roadmap(ctx context.Context, req app.RoadmapRequest) (resp *app.RoadmapResponse, err error) {
	startedAt := time.Now().UTC()
	defer observeUseCase(ctx, s.observer, "roadmap", startedAt, &err, nil)

	now := s.resolveNow(req.Now)
	snap, err := s.src.load(ctx, now)
	if err != nil {
		return nil, err
	}
	active, err := requireActive(snap)
	if err != nil {
		return nil, err
	}
	evals := grading.FilterByPeriod(snap.Evaluations, active.ID)
	return &app.RoadmapResponse{
		Period:   *active,
		Progress: grading.PeriodProgress(now, active.StartDate, active.EndDate),
		Closed:   grading.PeriodClosed(now, active.StartDate, active.EndDate),
		Entries:  grading.BuildRoadmap(now, active, snap.Subjects, evals),
	}, nil
}

func (s *dashboardService) Chart(ctx context.Context, req app.ChartRequest) (resp *app.ChartResponse, err error) {
	startedAt := time.Now().UTC()
	defer observeUseCase(ctx, s.observer, "chart", startedAt, &err, nil)

	snap, err := s.src.load(ctx, s.now())
	if err != nil {
		return nil, err
	}
	active, err := requireActive(snap)
	if err != nil {
		return nil, err
	}
	mode, err := s.resolveMode(ctx, req.ChartMode)
	if err != nil {
		return nil, err
	}
	evals := grading.FilterByPeriod(snap.Evaluations, active.ID)
	return &app.ChartResponse{
		Period: *active,
		Chart:  grading.BuildChart(snap.Subjects, evals, mode),
	}, nil
}

func (s *dashboardService) Annual(ctx context.Context, _ app.AnnualRequest) (resp *app.AnnualResponse, err error) {
	startedAt := time.Now().UTC()
	defer observeUseCase(ctx, s.observer, "annual", startedAt, &err, nil)

	snap, err := s.src.load(ctx, s.now())
	if err != nil {
		return nil, err
	}
	active, err := requireActive(snap)
	if err != nil {
		return nil, err
	}
	return &app.AnnualResponse{
		Active: *active,
		Annual: grading.AnnualAverage(*active, snap.Periods, snap.Subjects, snap.Evaluations),
	}, nil
}

func hasActual(evals []domain.Evaluation) bool {
	for _, e := range evals {
		if _, ok := e.ActualScore(); ok {
			return true
		}
	}
	return false
}
