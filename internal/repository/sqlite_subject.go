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

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo.
func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

const subjectColumns = `id, name, coefficient, color, goal, icon, created_at, updated_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (` + subjectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Coefficient,
		s.Color,
		s.Goal,
		s.Icon,
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id)
	s, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subject: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, s *domain.Subject) error {
	query := `UPDATE subjects SET name = ?, coefficient = ?, color = ?, goal = ?, icon = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Coefficient,
		s.Color,
		s.Goal,
		s.Icon,
		s.UpdatedAt.UTC().Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	return requireAffected(res, "subject")
}

// Delete removes the subject; its evaluations go with it through the
// foreign key cascade.
func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return requireAffected(res, "subject")
}

func (r *SQLiteSubjectRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects`); err != nil {
		return fmt.Errorf("deleting subjects: %w", err)
	}
	return nil
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var s domain.Subject
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&s.ID, &s.Name, &s.Coefficient, &s.Color, &s.Goal, &s.Icon,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	s.CreatedAt, s.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
