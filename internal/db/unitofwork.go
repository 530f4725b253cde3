package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// UnitOfWork runs fn inside one transaction. fn builds tx-scoped
// repositories from the DBTX it receives and must not touch the store any
// other way while the transaction is open.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork pins one pooled connection per transaction and opens it
// with BEGIN IMMEDIATE, taking the write lock before fn runs. A second
// writer (the reminder daemon or another command) waits up to busy_timeout.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	conn, err := u.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		rbErr := rollback(ctx, conn)
		if p := recover(); p != nil {
			panic(p)
		}
		if rbErr != nil {
			err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
	}()

	if err := fn(ctx, conn); err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}

// rollback ends the open transaction even when ctx is already cancelled.
// SQLite may already have rolled back on its own after some errors; that is
// not a failure.
func rollback(ctx context.Context, conn *sql.Conn) error {
	_, err := conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
	if err != nil && strings.Contains(err.Error(), "no transaction is active") {
		return nil
	}
	return err
}
