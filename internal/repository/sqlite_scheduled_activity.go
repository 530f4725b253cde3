package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

type SQLiteScheduledActivityRepo struct {
	db db.DBTX
}

func NewSQLiteScheduledActivityRepo(conn db.DBTX) *SQLiteScheduledActivityRepo {
	return &SQLiteScheduledActivityRepo{db: conn}
}

const scheduledColumns = `id, owner, activity_id, week_start, day_of_week, start_time, end_time, is_completed, created_at, updated_at`

func (r *SQLiteScheduledActivityRepo) Create(ctx context.Context, s *domain.ScheduledActivity) error {
	query := `INSERT INTO scheduled_activities (` + scheduledColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Owner),
		s.ActivityID,
		formatDate(s.WeekStart),
		s.DayOfWeek,
		s.StartTime.String(),
		s.EndTime.String(),
		boolToInt(s.IsCompleted),
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting scheduled activity: %w", err)
	}
	return nil
}

func (r *SQLiteScheduledActivityRepo) GetByID(ctx context.Context, owner domain.Owner, id string) (*domain.ScheduledActivity, error) {
	query := `SELECT ` + scheduledColumns + ` FROM scheduled_activities WHERE id = ? AND owner = ?`
	s, err := scanScheduled(r.db.QueryRowContext(ctx, query, id, string(owner)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scheduled activity %s: %w", id, ErrNotFound)
	}
	return s, err
}

// ListByWeek returns the week's entries ordered by day then start time.
func (r *SQLiteScheduledActivityRepo) ListByWeek(ctx context.Context, owner domain.Owner, weekStart time.Time) ([]*domain.ScheduledActivity, error) {
	query := `SELECT ` + scheduledColumns + ` FROM scheduled_activities
		WHERE owner = ? AND week_start = ?
		ORDER BY day_of_week, start_time, rowid`
	rows, err := r.db.QueryContext(ctx, query, string(owner), formatDate(weekStart))
	if err != nil {
		return nil, fmt.Errorf("listing scheduled activities: %w", err)
	}
	defer rows.Close()

	out := []*domain.ScheduledActivity{}
	for rows.Next() {
		s, err := scanScheduled(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduled activities: %w", err)
	}
	return out, nil
}

func (r *SQLiteScheduledActivityRepo) Update(ctx context.Context, s *domain.ScheduledActivity) error {
	s.UpdatedAt = nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_activities
		SET day_of_week = ?, start_time = ?, end_time = ?, is_completed = ?, updated_at = ?
		WHERE id = ? AND owner = ?`,
		s.DayOfWeek,
		s.StartTime.String(),
		s.EndTime.String(),
		boolToInt(s.IsCompleted),
		formatTimestamp(s.UpdatedAt),
		s.ID,
		string(s.Owner),
	)
	if err != nil {
		return fmt.Errorf("updating scheduled activity: %w", err)
	}
	return requireAffected(res, "scheduled activity "+s.ID)
}

func (r *SQLiteScheduledActivityRepo) Delete(ctx context.Context, owner domain.Owner, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scheduled_activities WHERE id = ? AND owner = ?`, id, string(owner))
	if err != nil {
		return fmt.Errorf("deleting scheduled activity: %w", err)
	}
	return requireAffected(res, "scheduled activity "+id)
}

// DeleteByWeek removes every entry of the owner's week and reports how many.
func (r *SQLiteScheduledActivityRepo) DeleteByWeek(ctx context.Context, owner domain.Owner, weekStart time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM scheduled_activities WHERE owner = ? AND week_start = ?`, string(owner), formatDate(weekStart))
	if err != nil {
		return 0, fmt.Errorf("clearing week: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing week: rows affected: %w", err)
	}
	return n, nil
}

func scanScheduled(row rowScanner) (*domain.ScheduledActivity, error) {
	var s domain.ScheduledActivity
	var owner, week, start, end, created, updated string
	var completed int
	err := row.Scan(&s.ID, &owner, &s.ActivityID, &week, &s.DayOfWeek, &start, &end, &completed, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning scheduled activity: %w", err)
	}
	s.Owner = domain.Owner(owner)
	s.IsCompleted = intToBool(completed)

	if s.WeekStart, err = domain.ParseDate(week); err != nil {
		return nil, fmt.Errorf("scheduled activity %s: %w", s.ID, err)
	}
	if s.StartTime, err = domain.ParseClock(start); err != nil {
		return nil, fmt.Errorf("scheduled activity %s: %w", s.ID, err)
	}
	if s.EndTime, err = domain.ParseClock(end); err != nil {
		return nil, fmt.Errorf("scheduled activity %s: %w", s.ID, err)
	}
	if s.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}
	return &s, nil
}
