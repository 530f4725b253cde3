package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleSettingsRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteCycleSettingsRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.TestOwner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCycleSettingsRepo_UpsertCreatesThenUpdates(t *testing.T) {
	repo := NewSQLiteCycleSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.NewTestSettings(testutil.Date("2024-01-01"))
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 28, got.CycleLengthDays)
	assert.Equal(t, testutil.Date("2024-01-01"), got.LastPeriodStart)

	again := testutil.NewTestSettings(testutil.Date("2024-02-03"), testutil.WithCycleLength(32), testutil.WithPeriodLength(4))
	require.NoError(t, repo.Upsert(ctx, again))

	got, err = repo.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID, "one row per owner; the original id is kept")
	assert.Equal(t, 32, got.CycleLengthDays)
	assert.Equal(t, 4, got.PeriodLengthDays)
	assert.Equal(t, testutil.Date("2024-02-03"), got.LastPeriodStart)
}

func TestCycleSettingsRepo_OwnersIsolated(t *testing.T) {
	repo := NewSQLiteCycleSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestSettings(testutil.Date("2024-01-01"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestSettings(testutil.Date("2024-01-10"), testutil.WithSettingsOwner("b"))))

	a, err := repo.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	b, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.NotEqual(t, a.LastPeriodStart, b.LastPeriodStart)
}
