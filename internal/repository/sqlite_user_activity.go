package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

type SQLiteUserActivityRepo struct {
	db db.DBTX
}

func NewSQLiteUserActivityRepo(conn db.DBTX) *SQLiteUserActivityRepo {
	return &SQLiteUserActivityRepo{db: conn}
}

const userActivityColumns = `id, owner, activity_id, is_active, is_favorite, created_at, updated_at`

func (r *SQLiteUserActivityRepo) Create(ctx context.Context, ua *domain.UserActivity) error {
	query := `INSERT INTO user_activities (` + userActivityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ua.ID,
		string(ua.Owner),
		ua.ActivityID,
		boolToInt(ua.IsActive),
		boolToInt(ua.IsFavorite),
		formatTimestamp(ua.CreatedAt),
		formatTimestamp(ua.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting user activity: %w", err)
	}
	return nil
}

func (r *SQLiteUserActivityRepo) GetByActivity(ctx context.Context, owner domain.Owner, activityID string) (*domain.UserActivity, error) {
	query := `SELECT ` + userActivityColumns + ` FROM user_activities WHERE owner = ? AND activity_id = ?`
	ua, err := scanUserActivity(r.db.QueryRowContext(ctx, query, string(owner), activityID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user activity %s: %w", activityID, ErrNotFound)
	}
	return ua, err
}

func (r *SQLiteUserActivityRepo) ListByOwner(ctx context.Context, owner domain.Owner) ([]*domain.UserActivity, error) {
	return r.list(ctx, `WHERE owner = ?`, string(owner))
}

func (r *SQLiteUserActivityRepo) ListActive(ctx context.Context, owner domain.Owner) ([]*domain.UserActivity, error) {
	return r.list(ctx, `WHERE owner = ? AND is_active = 1`, string(owner))
}

func (r *SQLiteUserActivityRepo) list(ctx context.Context, where string, args ...any) ([]*domain.UserActivity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userActivityColumns+` FROM user_activities `+where+` ORDER BY created_at, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing user activities: %w", err)
	}
	defer rows.Close()

	out := []*domain.UserActivity{}
	for rows.Next() {
		ua, err := scanUserActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user activities: %w", err)
	}
	return out, nil
}

func (r *SQLiteUserActivityRepo) Update(ctx context.Context, ua *domain.UserActivity) error {
	ua.UpdatedAt = nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_activities SET is_active = ?, is_favorite = ?, updated_at = ? WHERE id = ? AND owner = ?`,
		boolToInt(ua.IsActive),
		boolToInt(ua.IsFavorite),
		formatTimestamp(ua.UpdatedAt),
		ua.ID,
		string(ua.Owner),
	)
	if err != nil {
		return fmt.Errorf("updating user activity: %w", err)
	}
	return requireAffected(res, "user activity "+ua.ID)
}

func scanUserActivity(row rowScanner) (*domain.UserActivity, error) {
	var ua domain.UserActivity
	var owner, created, updated string
	var active, favorite int
	if err := row.Scan(&ua.ID, &owner, &ua.ActivityID, &active, &favorite, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user activity: %w", err)
	}
	ua.Owner = domain.Owner(owner)
	ua.IsActive = intToBool(active)
	ua.IsFavorite = intToBool(favorite)

	var err error
	if ua.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if ua.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}
	return &ua, nil
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
