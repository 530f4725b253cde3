package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, name, type, phases, duration_minutes, description, emoji, article_url, benefits`

// Upsert inserts a catalog entry or overwrites the one with the same id.
// An overwritten entry keeps its position in List.
func (r *SQLiteActivityRepo) Upsert(ctx context.Context, a *domain.Activity) error {
	benefits, err := encodeBenefits(a.Benefits)
	if err != nil {
		return err
	}
	now := formatTimestamp(nowUTC())
	query := `INSERT INTO activities (` + activityColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			phases = excluded.phases,
			duration_minutes = excluded.duration_minutes,
			description = excluded.description,
			emoji = excluded.emoji,
			article_url = excluded.article_url,
			benefits = excluded.benefits,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		string(a.Type),
		joinPhases(a.Phases),
		a.DurationMinutes,
		a.Description,
		a.Emoji,
		a.ArticleURL,
		benefits,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting activity %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (r *SQLiteActivityRepo) List(ctx context.Context) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

// ListByIDs returns the entries among ids that exist, in catalog order.
// Unknown ids are skipped.
func (r *SQLiteActivityRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Activity, error) {
	if len(ids) == 0 {
		return []*domain.Activity{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities by id: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var typ, phases, benefits string
	err := row.Scan(&a.ID, &a.Name, &typ, &phases, &a.DurationMinutes,
		&a.Description, &a.Emoji, &a.ArticleURL, &benefits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.Type = domain.ActivityType(typ)
	if a.Phases, err = splitPhases(phases); err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	if a.Benefits, err = decodeBenefits(benefits); err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	out := []*domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}
