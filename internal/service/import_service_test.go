package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/importer"
	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoActivityCatalog = `version: 1
activities:
  - id: sunrise-walk
    name: Sunrise walk
    type: exercise
    phases: [follicular, ovulation]
    duration_minutes: 40
  - id: ginger-tea
    name: Ginger tea
    type: meal
    phases: [menstruation]
`

func writeCatalog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestImportService_SeedDefaultCatalogOnce(t *testing.T) {
	env := setupRepos(t)
	svc := NewImportService(env.activities, env.uow)
	ctx := context.Background()

	def, err := importer.DefaultCatalog()
	require.NoError(t, err)

	res, err := svc.SeedDefaultCatalog(ctx)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, len(def.Activities), res.Activities)

	res, err = svc.SeedDefaultCatalog(ctx)
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	all, err := env.activities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(def.Activities))
}

func TestImportService_ImportCatalogUpserts(t *testing.T) {
	env := setupRepos(t)
	svc := NewImportService(env.activities, env.uow)
	ctx := context.Background()

	res, err := svc.ImportCatalog(ctx, writeCatalog(t, "catalog.yaml", twoActivityCatalog))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Activities)

	walk, err := env.activities.GetByID(ctx, "sunrise-walk")
	require.NoError(t, err)
	assert.Equal(t, 40, walk.DurationMinutes)

	renamed := `{"activities":[{"id":"sunrise-walk","name":"Dawn walk","type":"exercise","phases":["follicular"]}]}`
	_, err = svc.ImportCatalog(ctx, writeCatalog(t, "catalog.json", renamed))
	require.NoError(t, err)

	walk, err = env.activities.GetByID(ctx, "sunrise-walk")
	require.NoError(t, err)
	assert.Equal(t, "Dawn walk", walk.Name)

	all, err := env.activities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportService_InvalidCatalogWritesNothing(t *testing.T) {
	env := setupRepos(t)
	svc := NewImportService(env.activities, env.uow)
	ctx := context.Background()

	bad := `activities:
  - id: a
    name: A
    type: dancing
    phases: [follicular]
  - id: a
    name: ""
    type: meal
    phases: [winter]
`
	_, err := svc.ImportCatalog(ctx, writeCatalog(t, "bad.yaml", bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	all, err := env.activities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportService_MissingFile(t *testing.T) {
	env := setupRepos(t)
	svc := NewImportService(env.activities, env.uow)

	_, err := svc.ImportCatalog(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestImportService_RollbackOnUpsertFailure(t *testing.T) {
	env := setupRepos(t)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected upsert failure"),
	}
	svc := NewImportService(env.activities, failUoW)
	ctx := context.Background()

	_, err := svc.ImportCatalog(ctx, writeCatalog(t, "catalog.yaml", twoActivityCatalog))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected upsert failure")

	all, err := env.activities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "first upsert rolled back")
}
