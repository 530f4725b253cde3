package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayService_RecommendationsAndAgenda(t *testing.T) {
	env := setupRepos(t)
	env.configure(t, "2024-01-07")
	for _, n := range []string{"Bath", "Tea", "Soup", "Nap", "Heat pad", "Stretch"} {
		env.addActivity(t, n, testutil.WithPhases(domain.PhaseMenstruation))
	}
	luteal := env.addActivity(t, "Hike", testutil.WithPhases(domain.PhaseLuteal))
	evening := env.schedule(t, luteal.ID, "2024-01-07", testutil.WithDay(2), testutil.WithSlot("18:00", "19:00"))
	morning := env.schedule(t, luteal.ID, "2024-01-07", testutil.WithDay(2), testutil.WithSlot("07:00", "08:00"))
	env.schedule(t, luteal.ID, "2024-01-07", testutil.WithDay(3))

	svc := NewTodayService(env.activities, env.settings, env.schedules, nil)
	// Tuesday, cycle day 3.
	now := time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)

	resp, err := svc.Today(context.Background(), testutil.TestOwner, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-09", resp.Date.Format(domain.DateLayout))
	assert.Equal(t, domain.PhaseMenstruation, resp.Info.Phase)
	assert.Equal(t, 3, resp.Info.CycleDay)

	require.Len(t, resp.Recommendations, contract.RecommendationLimit)
	for _, a := range resp.Recommendations {
		assert.True(t, a.HasPhase(domain.PhaseMenstruation))
	}

	require.Len(t, resp.Agenda, 2)
	assert.Equal(t, morning.ID, resp.Agenda[0].Entry.ID)
	assert.Equal(t, evening.ID, resp.Agenda[1].Entry.ID)
	assert.Equal(t, "Hike", resp.Agenda[0].Name())
}

func TestTodayService_Unconfigured(t *testing.T) {
	env := setupRepos(t)
	env.addActivity(t, "Run", testutil.WithPhases(domain.PhaseFollicular))
	env.addActivity(t, "Soup", testutil.WithPhases(domain.PhaseMenstruation))

	resp, err := NewTodayService(env.activities, env.settings, env.schedules, nil).
		Today(context.Background(), testutil.TestOwner, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.False(t, resp.Info.Configured)
	assert.Equal(t, domain.PhaseFollicular, resp.Info.Phase)
	assert.Equal(t, []string{"Run"}, names(resp.Recommendations))
	assert.Empty(t, resp.Agenda)
}
