package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories are written against. Outside a
// unit of work it is the *sql.DB pool; inside one it is the pinned
// *sql.Conn holding the transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Conn)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
