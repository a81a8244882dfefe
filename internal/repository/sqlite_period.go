package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gradeflow/internal/db"
	"github.com/alexanderramin/gradeflow/internal/domain"
)

// SQLitePeriodRepo implements PeriodRepo using a SQLite database.
type SQLitePeriodRepo struct {
	db db.DBTX
}

// NewSQLitePeriodRepo creates a new SQLitePeriodRepo.
func NewSQLitePeriodRepo(conn db.DBTX) *SQLitePeriodRepo {
	return &SQLitePeriodRepo{db: conn}
}

const periodColumns = `id, name, start_date, end_date, goal, created_at, updated_at`

func (r *SQLitePeriodRepo) Create(ctx context.Context, p *domain.Period) error {
	query := `INSERT INTO periods (` + periodColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		nullableFloat(p.Goal),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting period: %w", err)
	}
	return nil
}

func (r *SQLitePeriodRepo) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+periodColumns+` FROM periods WHERE id = ?`, id)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("period: %w", ErrNotFound)
	}
	return p, err
}

func (r *SQLitePeriodRepo) List(ctx context.Context) ([]*domain.Period, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+periodColumns+` FROM periods ORDER BY start_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	defer rows.Close()

	var periods []*domain.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}
	return periods, nil
}

func (r *SQLitePeriodRepo) Update(ctx context.Context, p *domain.Period) error {
	query := `UPDATE periods SET name = ?, start_date = ?, end_date = ?, goal = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		nullableFloat(p.Goal),
		p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating period: %w", err)
	}
	return requireAffected(res, "period")
}

// Delete removes the period and, through the cascade, its evaluations. The
// active period setting is the caller's concern.
func (r *SQLitePeriodRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM periods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting period: %w", err)
	}
	return requireAffected(res, "period")
}

func (r *SQLitePeriodRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM periods`); err != nil {
		return fmt.Errorf("deleting periods: %w", err)
	}
	return nil
}

func scanPeriod(row rowScanner) (*domain.Period, error) {
	var p domain.Period
	var startStr, endStr, createdAtStr, updatedAtStr string
	var goal sql.NullFloat64
	err := row.Scan(&p.ID, &p.Name, &startStr, &endStr, &goal, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning period: %w", err)
	}

	if p.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	p.Goal = parseNullableFloat(goal)
	p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
