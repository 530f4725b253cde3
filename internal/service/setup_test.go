package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         *sql.DB
	activities repository.ActivityRepo
	choices    repository.UserActivityRepo
	settings   repository.CycleSettingsRepo
	schedules  repository.ScheduledActivityRepo
	uow        db.UnitOfWork
}

func setupRepos(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:         database,
		activities: repository.NewSQLiteActivityRepo(database),
		choices:    repository.NewSQLiteUserActivityRepo(database),
		settings:   repository.NewSQLiteCycleSettingsRepo(database),
		schedules:  repository.NewSQLiteScheduledActivityRepo(database),
		uow:        testutil.NewTestUoW(database),
	}
}

func (e *testEnv) addActivity(t *testing.T, name string, opts ...testutil.ActivityOption) *domain.Activity {
	t.Helper()
	a := testutil.NewTestActivity(name, opts...)
	require.NoError(t, e.activities.Upsert(context.Background(), a))
	return a
}

func (e *testEnv) activate(t *testing.T, a *domain.Activity, favorite bool) {
	t.Helper()
	require.NoError(t, e.choices.Create(context.Background(), testutil.NewTestUserActivity(a.ID, favorite)))
}

func (e *testEnv) configure(t *testing.T, lastStart string, opts ...testutil.SettingsOption) {
	t.Helper()
	require.NoError(t, e.settings.Upsert(context.Background(), testutil.NewTestSettings(testutil.Date(lastStart), opts...)))
}

func (e *testEnv) schedule(t *testing.T, activityID, weekStart string, opts ...testutil.ScheduledOption) *domain.ScheduledActivity {
	t.Helper()
	s := testutil.NewTestScheduled(activityID, testutil.Date(weekStart), opts...)
	require.NoError(t, e.schedules.Create(context.Background(), s))
	return s
}
