package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/service"
)

// matchID resolves input against a set of records. It tries, in order, an
// exact ID, a case-insensitive name and an ID prefix.
func matchID(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var byName []string
	for i, name := range names {
		if strings.EqualFold(name, input) {
			byName = append(byName, ids[i])
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches); use an ID", kind, input, len(byName))
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveSubjectID(ctx context.Context, app *App, input string) (string, error) {
	subjects, err := app.Subjects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(subjects))
	names := make([]string, len(subjects))
	for i, s := range subjects {
		ids[i], names[i] = s.ID, s.Name
	}
	return matchID("subject", input, ids, names)
}

func resolvePeriodID(ctx context.Context, app *App, input string) (string, error) {
	periods, err := app.Periods.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(periods))
	names := make([]string, len(periods))
	for i, p := range periods {
		ids[i], names[i] = p.ID, p.Name
	}
	return matchID("period", input, ids, names)
}

// resolvePeriodForFlag resolves an optional --period value. Empty input
// stays empty so the service falls back to the active period.
func resolvePeriodForFlag(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	return resolvePeriodID(ctx, app, input)
}

// resolveEvaluationID accepts a full evaluation ID or a unique prefix of one.
func resolveEvaluationID(ctx context.Context, app *App, input string) (string, error) {
	evals, err := app.Evaluations.List(ctx, service.EvaluationFilter{})
	if err != nil {
		return "", err
	}
	ids := make([]string, len(evals))
	for i, e := range evals {
		ids[i] = e.ID
	}
	return matchID("evaluation", input, ids, make([]string, len(ids)))
}
