package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ActivePeriodKey is the settings key holding the active period ID.
const ActivePeriodKey = "active_period_id"

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateActivePeriod(db); err != nil {
		return fmt.Errorf("repairing active period setting: %w", err)
	}
	return nil
}

// migrateActivePeriod points the active period setting at the earliest
// period when it is missing or references a deleted period.
func migrateActivePeriod(db *sql.DB) error {
	ctx := context.Background()

	var current string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, ActivePeriodKey).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading active period: %w", err)
	}
	if current != "" {
		var exists int
		if err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM periods WHERE id = ?`, current).Scan(&exists); err != nil {
			return fmt.Errorf("checking active period: %w", err)
		}
		if exists > 0 {
			return nil
		}
	}

	var first string
	err = db.QueryRowContext(ctx,
		`SELECT id FROM periods ORDER BY start_date, created_at LIMIT 1`).Scan(&first)
	if errors.Is(err, sql.ErrNoRows) {
		if current == "" {
			return nil
		}
		_, err = db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, ActivePeriodKey)
		return err
	}
	if err != nil {
		return fmt.Errorf("selecting first period: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, ActivePeriodKey, first)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		coefficient REAL NOT NULL CHECK(coefficient > 0),
		color       TEXT NOT NULL DEFAULT '',
		goal        REAL NOT NULL CHECK(goal >= 0 AND goal <= 20),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS periods (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		goal       REAL CHECK(goal IS NULL OR (goal >= 0 AND goal <= 20)),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_periods_start ON periods(start_date)`,

	`CREATE TABLE IF NOT EXISTS evaluations (
		id            TEXT PRIMARY KEY,
		subject_id    TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		period_id     TEXT NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
		type          TEXT NOT NULL
		              CHECK(type IN ('Control','Homework','Quiz','Project','Oral','Presentation')),
		score         REAL,
		planned_label TEXT,
		max_grade     REAL NOT NULL CHECK(max_grade > 0),
		date          TEXT NOT NULL,
		comment       TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK((score IS NULL) <> (planned_label IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_evaluations_subject ON evaluations(subject_id)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_period ON evaluations(period_id)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_date ON evaluations(date)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	// Added after the first release.
	`ALTER TABLE subjects ADD COLUMN icon TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE evaluations ADD COLUMN bonus REAL NOT NULL DEFAULT 0 CHECK(bonus >= 0)`,
}
