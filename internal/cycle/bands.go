package cycle

import (
	"math"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// BandPolicy maps a 1-based cycle day onto a phase.
type BandPolicy interface {
	PhaseFor(cycleDay, periodLength, cycleLength int) domain.Phase
}

// Reference cut-offs of a 28-day cycle.
const (
	referenceCycleLength = 28
	follicularLastDay    = 13
	ovulationLastDay     = 16
)

// FixedBands uses the 28-day cut-offs whatever the cycle length:
// menstruation through the period length, follicular to day 13,
// ovulation to day 16, luteal after.
type FixedBands struct{}

func (FixedBands) PhaseFor(cycleDay, periodLength, _ int) domain.Phase {
	return bandPhase(cycleDay, periodLength, follicularLastDay, ovulationLastDay)
}

// ProportionalBands scales the follicular and ovulation cut-offs by
// cycleLength/28, so a 35-day cycle ovulates around days 17..20.
type ProportionalBands struct{}

func (ProportionalBands) PhaseFor(cycleDay, periodLength, cycleLength int) domain.Phase {
	if cycleLength <= 0 {
		cycleLength = referenceCycleLength
	}
	scale := float64(cycleLength) / referenceCycleLength
	follicular := int(math.Round(follicularLastDay * scale))
	ovulation := int(math.Round(ovulationLastDay * scale))
	return bandPhase(cycleDay, periodLength, follicular, ovulation)
}

func bandPhase(cycleDay, periodLength, follicularEnd, ovulationEnd int) domain.Phase {
	switch {
	case cycleDay <= periodLength:
		return domain.PhaseMenstruation
	case cycleDay <= follicularEnd:
		return domain.PhaseFollicular
	case cycleDay <= ovulationEnd:
		return domain.PhaseOvulation
	default:
		return domain.PhaseLuteal
	}
}

// BandPolicyByName resolves "fixed" or "proportional"; anything else is nil.
func BandPolicyByName(name string) BandPolicy {
	switch name {
	case "", "fixed":
		return FixedBands{}
	case "proportional":
		return ProportionalBands{}
	default:
		return nil
	}
}
