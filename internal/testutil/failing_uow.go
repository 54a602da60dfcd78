package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/samplan/internal/db"
)

// FailingUoW runs real transactions but fails one write inside them: the
// FailOn-th ExecContext call (1-based), or the first whose SQL contains
// Match when Match is set. Reads are never counted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow    *FailingUoW
	writes int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.uow.Match != "" && strings.Contains(query, f.uow.Match) {
		return nil, f.uow.Err
	}
	if f.uow.Match == "" && f.writes == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
