// Package cycle derives the cycle day and phase for a date from an owner's
// cycle settings. Everything here is pure and recomputed on every call.
package cycle

import (
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// Calculator computes phase information using a substitutable band policy.
type Calculator struct {
	Bands BandPolicy
}

// NewCalculator returns a calculator using the fixed 28-day bands.
func NewCalculator() *Calculator {
	return &Calculator{Bands: FixedBands{}}
}

var defaultCalculator = NewCalculator()

// ComputeCycleInfo is Calculator.ComputeCycleInfo with fixed bands.
func ComputeCycleInfo(settings *domain.CycleSettings, ref time.Time) domain.PhaseInfo {
	return defaultCalculator.ComputeCycleInfo(settings, ref)
}

// PhaseForDate is Calculator.PhaseForDate with fixed bands.
func PhaseForDate(settings *domain.CycleSettings, date time.Time) domain.Phase {
	return defaultCalculator.PhaseForDate(settings, date)
}

// NormalizedMod returns daysSince mod cycleLength in [0, cycleLength).
func NormalizedMod(daysSince, cycleLength int) int {
	return ((daysSince % cycleLength) + cycleLength) % cycleLength
}

// CycleDay returns the 1-based day of the cycle containing date.
// Dates before the last period start wrap backwards into earlier cycles.
func CycleDay(settings *domain.CycleSettings, date time.Time) int {
	if !settings.Configured() {
		return 1
	}
	cycleLength, _ := settings.Effective()
	daysSince := domain.DaysBetween(settings.LastPeriodStart, date)
	return NormalizedMod(daysSince, cycleLength) + 1
}

// ComputeCycleInfo returns the phase, cycle day and next-period data for ref.
// Unconfigured settings yield follicular day 1 of a default-length cycle.
func (c *Calculator) ComputeCycleInfo(settings *domain.CycleSettings, ref time.Time) domain.PhaseInfo {
	cycleLength, periodLength := settings.Effective()
	if !settings.Configured() {
		return domain.PhaseInfo{
			Phase:               domain.PhaseFollicular,
			CycleDay:            1,
			DaysUntilNextPeriod: cycleLength,
			CycleLengthDays:     cycleLength,
			PeriodLengthDays:    periodLength,
		}
	}

	day := CycleDay(settings, ref)
	return domain.PhaseInfo{
		Phase:               c.bands().PhaseFor(day, periodLength, cycleLength),
		CycleDay:            day,
		DaysUntilNextPeriod: cycleLength - day + 1,
		NextPeriodDate:      domain.DateOf(settings.LastPeriodStart).AddDate(0, 0, cycleLength),
		CycleLengthDays:     cycleLength,
		PeriodLengthDays:    periodLength,
		Configured:          true,
	}
}

// PhaseForDate returns only the phase for an arbitrary date.
func (c *Calculator) PhaseForDate(settings *domain.CycleSettings, date time.Time) domain.Phase {
	if !settings.Configured() {
		return domain.PhaseFollicular
	}
	cycleLength, periodLength := settings.Effective()
	return c.bands().PhaseFor(CycleDay(settings, date), periodLength, cycleLength)
}

// ProjectedNextPeriod is the start of the next period counted from ref,
// unlike PhaseInfo.NextPeriodDate which is anchored on the stored start.
func (c *Calculator) ProjectedNextPeriod(settings *domain.CycleSettings, ref time.Time) time.Time {
	info := c.ComputeCycleInfo(settings, ref)
	return domain.DateOf(ref).AddDate(0, 0, info.DaysUntilNextPeriod)
}

func (c *Calculator) bands() BandPolicy {
	if c == nil || c.Bands == nil {
		return FixedBands{}
	}
	return c.Bands
}
