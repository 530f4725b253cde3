package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

type SQLiteCycleSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteCycleSettingsRepo(conn db.DBTX) *SQLiteCycleSettingsRepo {
	return &SQLiteCycleSettingsRepo{db: conn}
}

func (r *SQLiteCycleSettingsRepo) Get(ctx context.Context, owner domain.Owner) (*domain.CycleSettings, error) {
	query := `SELECT id, owner, cycle_length_days, period_length_days, last_period_start, created_at, updated_at
		FROM cycle_settings WHERE owner = ?`
	var s domain.CycleSettings
	var own, last, created, updated string
	err := r.db.QueryRowContext(ctx, query, string(owner)).Scan(
		&s.ID, &own, &s.CycleLengthDays, &s.PeriodLengthDays, &last, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cycle settings for %s: %w", owner, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cycle settings: %w", err)
	}
	s.Owner = domain.Owner(own)
	if s.LastPeriodStart, err = domain.ParseDate(last); err != nil {
		return nil, fmt.Errorf("cycle settings: %w", err)
	}
	if s.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert creates the owner's row or overwrites its values. The stored id
// and created_at of an existing row are kept.
func (r *SQLiteCycleSettingsRepo) Upsert(ctx context.Context, s *domain.CycleSettings) error {
	query := `INSERT INTO cycle_settings
		(id, owner, cycle_length_days, period_length_days, last_period_start, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET
			cycle_length_days = excluded.cycle_length_days,
			period_length_days = excluded.period_length_days,
			last_period_start = excluded.last_period_start,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Owner),
		s.CycleLengthDays,
		s.PeriodLengthDays,
		formatDate(s.LastPeriodStart),
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting cycle settings: %w", err)
	}
	return nil
}
