package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN re-runs on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		type             TEXT NOT NULL
		                 CHECK(type IN ('exercise','meal','wellbeing','self_care','productivity')),
		phases           TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL DEFAULT 0 CHECK(duration_minutes >= 0),
		description      TEXT NOT NULL DEFAULT '',
		emoji            TEXT NOT NULL DEFAULT '',
		article_url      TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type)`,

	`CREATE TABLE IF NOT EXISTS user_activities (
		id          TEXT PRIMARY KEY,
		owner       TEXT NOT NULL,
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		is_active   INTEGER NOT NULL DEFAULT 0,
		is_favorite INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(owner, activity_id)
	)`,

	`CREATE TABLE IF NOT EXISTS scheduled_activities (
		id           TEXT PRIMARY KEY,
		owner        TEXT NOT NULL,
		activity_id  TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		week_start   TEXT NOT NULL,
		day_of_week  INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
		start_time   TEXT NOT NULL,
		end_time     TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scheduled_owner_week ON scheduled_activities(owner, week_start)`,

	`CREATE TABLE IF NOT EXISTS cycle_settings (
		id                 TEXT PRIMARY KEY,
		owner              TEXT NOT NULL UNIQUE,
		cycle_length_days  INTEGER NOT NULL DEFAULT 28 CHECK(cycle_length_days > 0),
		period_length_days INTEGER NOT NULL DEFAULT 5 CHECK(period_length_days > 0),
		last_period_start  TEXT NOT NULL,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	// Benefits arrived after the first catalog release.
	`ALTER TABLE activities ADD COLUMN benefits TEXT NOT NULL DEFAULT ''`,
}
