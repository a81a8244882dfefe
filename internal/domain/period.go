package domain

import "time"

type Period struct {
	ID        string
	Name      string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtefield=StartDate"`
	// Goal overrides the coefficient-weighted subject goal when set.
	Goal      *float64 `validate:"omitempty,gte=0,lte=20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether t falls inside the period's calendar range.
// The end date is inclusive up to the end of that day.
func (p *Period) Contains(t time.Time) bool {
	if t.Before(p.StartDate) {
		return false
	}
	return t.Before(p.EndDate.AddDate(0, 0, 1))
}

// HasGoal reports whether the period carries an explicit goal override.
func (p *Period) HasGoal() bool {
	return p.Goal != nil
}
