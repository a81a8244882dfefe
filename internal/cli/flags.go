package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/importer"
	"github.com/spf13/pflag"
)

// chartModeFlag is a pflag.Value accepting 10, 20 or combined.
type chartModeFlag struct {
	mode domain.ChartMode
}

var _ pflag.Value = (*chartModeFlag)(nil)

func (f *chartModeFlag) String() string { return string(f.mode) }
func (f *chartModeFlag) Type() string   { return "scale" }

func (f *chartModeFlag) Set(s string) error {
	mode, ok := domain.ParseChartMode(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return fmt.Errorf("unknown scale %q (want 10, 20 or combined)", s)
	}
	f.mode = mode
	return nil
}

// evalTypeFlag is a pflag.Value matching evaluation types case-insensitively.
type evalTypeFlag struct {
	typ domain.EvaluationType
}

var _ pflag.Value = (*evalTypeFlag)(nil)

func (f *evalTypeFlag) String() string { return string(f.typ) }
func (f *evalTypeFlag) Type() string   { return "type" }

func (f *evalTypeFlag) Set(s string) error {
	t, ok := domain.ParseEvaluationType(s)
	if !ok {
		return fmt.Errorf("unknown evaluation type %q (want one of %s)", s, evaluationTypeList())
	}
	f.typ = t
	return nil
}

func evaluationTypeList() string {
	names := make([]string, len(domain.EvaluationTypes))
	for i, t := range domain.EvaluationTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// parseScore reads "15", "15.5" or "15/20". The second return value is the
// scale when one was written, else 0.
func parseScore(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	raw, scale, hasScale := strings.Cut(s, "/")
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid score %q", s)
	}
	if !hasScale {
		return score, 0, nil
	}
	maxGrade, err := strconv.ParseFloat(strings.TrimSpace(scale), 64)
	if err != nil || maxGrade <= 0 {
		return 0, 0, fmt.Errorf("invalid scale in %q", s)
	}
	return score, maxGrade, nil
}

// parseOptionalDate returns the zero time for empty input.
func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return importer.ParseDate(strings.TrimSpace(s))
}

// parseNow parses the --now override. A bare date means noon UTC on that day.
func parseNow(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	d, err := importer.ParseDate(s)
	if err != nil {
		return nil, err
	}
	t := d.Add(12 * time.Hour)
	return &t, nil
}
