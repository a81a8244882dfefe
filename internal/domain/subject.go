package domain

import "time"

// MaxGoal is the top of the common grading basis every score is normalized to.
const MaxGoal = 20.0

type Subject struct {
	ID          string
	Name        string  `validate:"required"`
	Coefficient float64 `validate:"gt=0"`
	Color       string
	Goal        float64 `validate:"gte=0,lte=20"`
	Icon        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayID returns the first 8 characters of the subject ID.
func (s *Subject) DisplayID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
