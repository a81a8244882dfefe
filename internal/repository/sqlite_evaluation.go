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

// SQLiteEvaluationRepo implements EvaluationRepo using a SQLite database.
// The outcome is stored as either a score or a planned label, never both.
type SQLiteEvaluationRepo struct {
	db db.DBTX
}

// NewSQLiteEvaluationRepo creates a new SQLiteEvaluationRepo.
func NewSQLiteEvaluationRepo(conn db.DBTX) *SQLiteEvaluationRepo {
	return &SQLiteEvaluationRepo{db: conn}
}

const evaluationColumns = `id, subject_id, period_id, type, score, planned_label, max_grade,
	bonus, date, comment, created_at, updated_at`

func (r *SQLiteEvaluationRepo) Create(ctx context.Context, e *domain.Evaluation) error {
	score, label, err := outcomeColumns(e.Outcome)
	if err != nil {
		return err
	}
	query := `INSERT INTO evaluations (` + evaluationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.SubjectID,
		e.PeriodID,
		string(e.Type),
		score,
		label,
		e.MaxGrade,
		e.Bonus,
		e.Date.Format(dateLayout),
		e.Comment,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting evaluation: %w", err)
	}
	return nil
}

func (r *SQLiteEvaluationRepo) GetByID(ctx context.Context, id string) (*domain.Evaluation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE id = ?`, id)
	e, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluation: %w", ErrNotFound)
	}
	return e, err
}

func (r *SQLiteEvaluationRepo) List(ctx context.Context) ([]*domain.Evaluation, error) {
	return r.query(ctx, `SELECT `+evaluationColumns+` FROM evaluations ORDER BY date, created_at`)
}

func (r *SQLiteEvaluationRepo) ListByPeriod(ctx context.Context, periodID string) ([]*domain.Evaluation, error) {
	return r.query(ctx, `SELECT `+evaluationColumns+` FROM evaluations
		WHERE period_id = ? ORDER BY date, created_at`, periodID)
}

func (r *SQLiteEvaluationRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Evaluation, error) {
	return r.query(ctx, `SELECT `+evaluationColumns+` FROM evaluations
		WHERE subject_id = ? ORDER BY date, created_at`, subjectID)
}

func (r *SQLiteEvaluationRepo) Update(ctx context.Context, e *domain.Evaluation) error {
	score, label, err := outcomeColumns(e.Outcome)
	if err != nil {
		return err
	}
	query := `UPDATE evaluations SET subject_id = ?, period_id = ?, type = ?, score = ?, planned_label = ?,
		max_grade = ?, bonus = ?, date = ?, comment = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.SubjectID,
		e.PeriodID,
		string(e.Type),
		score,
		label,
		e.MaxGrade,
		e.Bonus,
		e.Date.Format(dateLayout),
		e.Comment,
		e.UpdatedAt.UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating evaluation: %w", err)
	}
	return requireAffected(res, "evaluation")
}

func (r *SQLiteEvaluationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting evaluation: %w", err)
	}
	return requireAffected(res, "evaluation")
}

func (r *SQLiteEvaluationRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM evaluations`); err != nil {
		return fmt.Errorf("deleting evaluations: %w", err)
	}
	return nil
}

func (r *SQLiteEvaluationRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*domain.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluations: %w", err)
	}
	return evals, nil
}

// outcomeColumns splits the outcome into the score and planned_label columns.
func outcomeColumns(o domain.Outcome) (score, label any, err error) {
	switch v := o.(type) {
	case domain.Actual:
		return v.Score, nil, nil
	case domain.Planned:
		return nil, v.Label, nil
	default:
		return nil, nil, fmt.Errorf("evaluation outcome: %w", domain.ErrInvalid)
	}
}

func scanEvaluation(row rowScanner) (*domain.Evaluation, error) {
	var e domain.Evaluation
	var typeStr, dateStr, createdAtStr, updatedAtStr string
	var score sql.NullFloat64
	var label sql.NullString
	err := row.Scan(
		&e.ID, &e.SubjectID, &e.PeriodID, &typeStr,
		&score, &label, &e.MaxGrade, &e.Bonus,
		&dateStr, &e.Comment, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning evaluation: %w", err)
	}

	e.Type = domain.EvaluationType(typeStr)
	if score.Valid {
		e.Outcome = domain.Actual{Score: score.Float64}
	} else {
		e.Outcome = domain.Planned{Label: label.String}
	}
	if e.Date, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	e.CreatedAt, e.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
