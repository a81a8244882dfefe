package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/gradeflow/internal/db"
)

// FaultyUoW is a UnitOfWork that makes one write statement fail inside the
// transaction. Statements are matched by a SQL fragment such as
// "INSERT INTO evaluations"; the Nth matching ExecContext call (counted from
// 1) returns Err and the transaction rolls back. Reads pass through.
type FaultyUoW struct {
	DB    *sql.DB
	Match string
	Nth   int
	Err   error

	mu       sync.Mutex
	executed []string
}

// NewFaultyUoW fails the first statement containing match.
func NewFaultyUoW(database *sql.DB, match string) *FaultyUoW {
	return &FaultyUoW{DB: database, Match: match, Nth: 1, Err: fmt.Errorf("injected failure on %q", match)}
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &faultyTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// WithinReadTx runs fn like WithinTx and always rolls back.
func (u *FaultyUoW) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return fn(ctx, &faultyTx{DBTX: tx, uow: u})
}

// Executed returns the write statements that ran, failed one included.
func (u *FaultyUoW) Executed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.executed...)
}

type faultyTx struct {
	db.DBTX
	uow     *FaultyUoW
	matches int
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.mu.Lock()
	f.uow.executed = append(f.uow.executed, strings.Join(strings.Fields(query), " "))
	f.uow.mu.Unlock()

	if f.uow.Match != "" && strings.Contains(query, f.uow.Match) {
		f.matches++
		if f.matches == f.uow.Nth {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
