package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/repository"
)

type settingsService struct {
	settings    repository.SettingsRepo
	defaultMode domain.ChartMode
}

// NewSettingsService falls back to defaultMode when no chart preference is
// stored yet.
func NewSettingsService(settings repository.SettingsRepo, defaultMode domain.ChartMode) SettingsService {
	if _, ok := domain.ParseChartMode(string(defaultMode)); !ok {
		defaultMode = domain.ChartScale20
	}
	return &settingsService{settings: settings, defaultMode: defaultMode}
}

func (s *settingsService) ChartMode(ctx context.Context) (domain.ChartMode, error) {
	return storedChartMode(ctx, s.settings, s.defaultMode)
}

func (s *settingsService) SetChartMode(ctx context.Context, mode domain.ChartMode) error {
	parsed, ok := domain.ParseChartMode(string(mode))
	if !ok {
		return fmt.Errorf("%w: unknown chart mode %q", domain.ErrInvalid, mode)
	}
	return s.settings.Set(ctx, repository.SettingChartScale, string(parsed))
}

// storedChartMode reads the chart preference. Unreadable values fall back to
// the default rather than failing the whole report.
func storedChartMode(ctx context.Context, settings repository.SettingsRepo, fallback domain.ChartMode) (domain.ChartMode, error) {
	raw, err := settings.Get(ctx, repository.SettingChartScale)
	if errors.Is(err, repository.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	mode, ok := domain.ParseChartMode(raw)
	if !ok {
		return fallback, nil
	}
	return mode, nil
}
