package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
)

// loadSettings returns the owner's settings, or nil when none are stored.
func loadSettings(ctx context.Context, repo repository.CycleSettingsRepo, owner domain.Owner) (*domain.CycleSettings, error) {
	s, err := repo.Get(ctx, owner)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cycle settings: %w", err)
	}
	return s, nil
}

// currentPhase is the owner's phase on ref; follicular when unconfigured.
func currentPhase(ctx context.Context, repo repository.CycleSettingsRepo, calc *cycle.Calculator, owner domain.Owner, ref time.Time) (domain.Phase, error) {
	s, err := loadSettings(ctx, repo, owner)
	if err != nil {
		return "", err
	}
	return calc.PhaseForDate(s, ref), nil
}

// sortPhaseFirst moves activities tagged with phase to the front, keeping
// the relative order inside both groups.
func sortPhaseFirst(acts []*domain.Activity, phase domain.Phase) {
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].HasPhase(phase) && !acts[j].HasPhase(phase)
	})
}

func filterByPhase(acts []*domain.Activity, phase domain.Phase) []*domain.Activity {
	out := make([]*domain.Activity, 0, len(acts))
	for _, a := range acts {
		if a.HasPhase(phase) {
			out = append(out, a)
		}
	}
	return out
}

func indexActivities(acts []*domain.Activity) map[string]*domain.Activity {
	m := make(map[string]*domain.Activity, len(acts))
	for _, a := range acts {
		m[a.ID] = a
	}
	return m
}

func calculatorOrDefault(c *cycle.Calculator) *cycle.Calculator {
	if c == nil {
		return cycle.NewCalculator()
	}
	return c
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return errors.New(msg)
}
