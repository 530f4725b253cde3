package domain

import (
	"fmt"
	"time"
)

const (
	DefaultCycleLengthDays  = 28
	DefaultPeriodLengthDays = 5

	MinCycleLengthDays  = 21
	MaxCycleLengthDays  = 40
	MinPeriodLengthDays = 2
	MaxPeriodLengthDays = 10
)

// CycleSettings is the per-owner cycle configuration. One record per owner.
type CycleSettings struct {
	ID               string
	Owner            Owner
	CycleLengthDays  int
	PeriodLengthDays int
	LastPeriodStart  time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Configured reports whether the settings carry a last period start.
// A nil receiver is a valid "not yet configured" value.
func (s *CycleSettings) Configured() bool {
	return s != nil && !s.LastPeriodStart.IsZero()
}

// Effective returns the cycle and period lengths with zero values replaced
// by the defaults.
func (s *CycleSettings) Effective() (cycleLength, periodLength int) {
	if s == nil {
		return DefaultCycleLengthDays, DefaultPeriodLengthDays
	}
	return CoalesceInt(s.CycleLengthDays, DefaultCycleLengthDays),
		CoalesceInt(s.PeriodLengthDays, DefaultPeriodLengthDays)
}

// Validate checks the ranges the settings form accepts.
func (s *CycleSettings) Validate() error {
	if s == nil {
		return fmt.Errorf("cycle settings are required")
	}
	if s.LastPeriodStart.IsZero() {
		return fmt.Errorf("last period start is required")
	}
	if s.CycleLengthDays < MinCycleLengthDays || s.CycleLengthDays > MaxCycleLengthDays {
		return fmt.Errorf("cycle length %d must be between %d and %d days",
			s.CycleLengthDays, MinCycleLengthDays, MaxCycleLengthDays)
	}
	if s.PeriodLengthDays < MinPeriodLengthDays || s.PeriodLengthDays > MaxPeriodLengthDays {
		return fmt.Errorf("period length %d must be between %d and %d days",
			s.PeriodLengthDays, MinPeriodLengthDays, MaxPeriodLengthDays)
	}
	if s.PeriodLengthDays >= s.CycleLengthDays {
		return fmt.Errorf("period length %d must be shorter than cycle length %d",
			s.PeriodLengthDays, s.CycleLengthDays)
	}
	return nil
}

// PhaseInfo is derived from settings and a reference date; never persisted.
type PhaseInfo struct {
	Phase               Phase
	CycleDay            int
	DaysUntilNextPeriod int
	NextPeriodDate      time.Time // zero when not configured
	CycleLengthDays     int
	PeriodLengthDays    int
	Configured          bool
}
