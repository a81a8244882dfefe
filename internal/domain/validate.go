package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid marks a record that failed validation.
var ErrInvalid = errors.New("invalid record")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("evaltype", func(fl validator.FieldLevel) bool {
		return EvaluationType(fl.Field().String()).Valid()
	})
	return v
}

// ValidateSubject checks name, coefficient and goal range.
func ValidateSubject(s *Subject) error {
	return wrapValidation("subject", validate.Struct(s))
}

// ValidatePeriod checks name, date order and the optional goal range.
func ValidatePeriod(p *Period) error {
	return wrapValidation("period", validate.Struct(p))
}

// ValidateEvaluation checks the struct fields and the outcome: an actual score
// must lie in [0, MaxGrade] and a planned evaluation needs a label.
func ValidateEvaluation(e *Evaluation) error {
	if err := wrapValidation("evaluation", validate.Struct(e)); err != nil {
		return err
	}
	switch o := e.Outcome.(type) {
	case Actual:
		if o.Score < 0 || o.Score > e.MaxGrade {
			return fmt.Errorf("%w: evaluation score %.2f outside [0, %.2f]", ErrInvalid, o.Score, e.MaxGrade)
		}
	case Planned:
		if strings.TrimSpace(o.Label) == "" {
			return fmt.Errorf("%w: planned evaluation requires a name", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: evaluation has no outcome", ErrInvalid)
	}
	return nil
}

func wrapValidation(kind string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, kind, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalid, kind, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, strings.ToLower(fe.Param()))
	case "evaltype":
		return fmt.Sprintf("%s %q is not a known evaluation type", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
