package grading

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

// SchoolYear is a twelve-month bucket starting in September of StartYear.
type SchoolYear struct {
	StartYear int
}

func (y SchoolYear) String() string {
	return fmt.Sprintf("%d-%d", y.StartYear, y.StartYear+1)
}

// SchoolYearOf maps September onwards to Y-(Y+1) and January to August to
// (Y-1)-Y.
func SchoolYearOf(t time.Time) SchoolYear {
	if t.Month() >= time.September {
		return SchoolYear{StartYear: t.Year()}
	}
	return SchoolYear{StartYear: t.Year() - 1}
}

// PeriodsInSameYear returns the periods whose start date falls in the same
// school year as the active period's start date, in input order.
func PeriodsInSameYear(active domain.Period, all []domain.Period) []domain.Period {
	year := SchoolYearOf(active.StartDate)
	var out []domain.Period
	for _, p := range all {
		if SchoolYearOf(p.StartDate) == year {
			out = append(out, p)
		}
	}
	return out
}

// Annual is the aggregate over every period of one school year.
type Annual struct {
	Year    SchoolYear
	Periods []domain.Period
	Average float64
	// Available is false when fewer than two periods share the year.
	Available bool
}

// AnnualAverage computes the period-style weighted average over the union of
// actual evaluations from every period in the active period's school year.
// A single period yields Available=false and a zero average.
func AnnualAverage(active domain.Period, periods []domain.Period, subjects []domain.Subject, evals []domain.Evaluation) Annual {
	inYear := PeriodsInSameYear(active, periods)
	result := Annual{Year: SchoolYearOf(active.StartDate), Periods: inYear}
	if len(inYear) < 2 {
		return result
	}

	ids := make(map[string]bool, len(inYear))
	for _, p := range inYear {
		ids[p.ID] = true
	}
	var yearEvals []domain.Evaluation
	for _, e := range evals {
		if ids[e.PeriodID] {
			yearEvals = append(yearEvals, e)
		}
	}

	result.Available = true
	result.Average = PeriodAverage(subjects, yearEvals)
	return result
}
