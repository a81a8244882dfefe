// Package config reads gradeflow settings from GRADEFLOW_* environment
// variables, falling back to defaults for anything unset or malformed.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

type Config struct {
	// DBPath is the SQLite file. ":memory:" is accepted for throwaway runs.
	DBPath      string
	LogUseCases bool
	LogLevel    slog.Level
	// ChartMode is used when no chart scale has been saved yet.
	ChartMode   domain.ChartMode
	RecentCount int
}

// DefaultConfig returns the defaults with an empty DBPath; Load fills it in.
func DefaultConfig() Config {
	return Config{
		LogUseCases: false,
		LogLevel:    slog.LevelInfo,
		ChartMode:   domain.ChartScale20,
		RecentCount: 5,
	}
}

// Load reads configuration from the environment. The database defaults to
// ~/.gradeflow/gradeflow.db.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("GRADEFLOW_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".gradeflow", "gradeflow.db")
	}

	if v := os.Getenv("GRADEFLOW_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GRADEFLOW_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("GRADEFLOW_CHART_SCALE"); v != "" {
		if mode, ok := domain.ParseChartMode(v); ok {
			cfg.ChartMode = mode
		}
	}
	if v := os.Getenv("GRADEFLOW_RECENT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RecentCount = n
		}
	}

	return cfg, nil
}
