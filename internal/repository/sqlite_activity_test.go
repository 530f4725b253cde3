package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_UpsertAndGetByID(t *testing.T) {
	repo := NewSQLiteActivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestActivity("Gentle yoga",
		testutil.WithType(domain.ActivityExercise),
		testutil.WithPhases(domain.PhaseMenstruation, domain.PhaseLuteal),
		testutil.WithDuration(45),
		testutil.WithBenefits("eases cramps", "calm, grounded mood"),
	)
	a.ArticleURL = "https://example.org/yoga"
	require.NoError(t, repo.Upsert(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestActivityRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteActivityRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityRepo_UpsertOverwritesInPlace(t *testing.T) {
	repo := NewSQLiteActivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestActivity("First")
	second := testutil.NewTestActivity("Second")
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, second))

	first.Name = "First, renamed"
	first.Phases = []domain.Phase{domain.PhaseOvulation}
	require.NoError(t, repo.Upsert(ctx, first))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First, renamed", list[0].Name, "overwrite keeps catalog position")
	assert.Equal(t, []domain.Phase{domain.PhaseOvulation}, list[0].Phases)
	assert.Equal(t, "Second", list[1].Name)
}

func TestActivityRepo_ListByIDs(t *testing.T) {
	repo := NewSQLiteActivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestActivity("A")
	b := testutil.NewTestActivity("B")
	c := testutil.NewTestActivity("C")
	for _, x := range []*domain.Activity{a, b, c} {
		require.NoError(t, repo.Upsert(ctx, x))
	}

	got, err := repo.ListByIDs(ctx, []string{c.ID, a.ID, "unknown"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)

	empty, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestActivityRepo_RejectsUnknownType(t *testing.T) {
	repo := NewSQLiteActivityRepo(testutil.NewTestDB(t))

	a := testutil.NewTestActivity("Odd", testutil.WithType("sleep"))
	assert.Error(t, repo.Upsert(context.Background(), a))
}
