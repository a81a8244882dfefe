package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
)

// ValidateBackup checks the whole document before anything is written.
// Returns every problem found, not just the first.
func ValidateBackup(b *Backup) []error {
	var errs []error

	if b.Version != 0 && b.Version != BackupVersion {
		errs = append(errs, fmt.Errorf("version %d is not supported (expected %d)", b.Version, BackupVersion))
	}

	subjectIDs := make(map[string]bool, len(b.Subjects))
	for i, s := range b.Subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)
		errs = append(errs, checkID(prefix, s.ID, subjectIDs)...)
		sub := convertSubject(s, time.Time{})
		errs = appendDomainErr(errs, prefix, domain.ValidateSubject(sub))
	}

	periodIDs := make(map[string]bool, len(b.Periods))
	for i, p := range b.Periods {
		prefix := fmt.Sprintf("periods[%d]", i)
		errs = append(errs, checkID(prefix, p.ID, periodIDs)...)

		start, startErr := ParseDate(p.StartDate)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.startDate: %w", prefix, startErr))
		}
		end, endErr := ParseDate(p.EndDate)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.endDate: %w", prefix, endErr))
		}
		if startErr == nil && endErr == nil {
			period := convertPeriod(p, start, end, time.Time{})
			errs = appendDomainErr(errs, prefix, domain.ValidatePeriod(period))
		}
	}

	gradeIDs := make(map[string]bool, len(b.Grades))
	for i, g := range b.Grades {
		prefix := fmt.Sprintf("grades[%d]", i)
		errs = append(errs, checkID(prefix, g.ID, gradeIDs)...)

		if g.SubjectID != "" && !subjectIDs[g.SubjectID] {
			errs = append(errs, fmt.Errorf("%s.subjectId %q does not match any subject", prefix, g.SubjectID))
		}
		if g.PeriodID != "" && !periodIDs[g.PeriodID] {
			errs = append(errs, fmt.Errorf("%s.periodId %q does not match any period", prefix, g.PeriodID))
		}
		date, err := ParseDate(g.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.date: %w", prefix, err))
			continue
		}
		errs = appendDomainErr(errs, prefix, domain.ValidateEvaluation(convertGrade(g, date, time.Time{})))
	}

	if b.ActivePeriodID != "" && !periodIDs[b.ActivePeriodID] {
		errs = append(errs, fmt.Errorf("activePeriodId %q does not match any period", b.ActivePeriodID))
	}

	return errs
}

func checkID(prefix, id string, seen map[string]bool) []error {
	if strings.TrimSpace(id) == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id %q is duplicated", prefix, id)}
	}
	seen[id] = true
	return nil
}

func appendDomainErr(errs []error, prefix string, err error) []error {
	if err == nil {
		return errs
	}
	return append(errs, fmt.Errorf("%s: %w", prefix, err))
}

// ParseDate accepts a plain date or an RFC 3339 timestamp and returns the
// UTC calendar date at midnight.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
