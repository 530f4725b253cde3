package domain

import (
	"fmt"
	"strings"
)

// Owner identifies the user that owns settings, activity choices and
// scheduled entries. Every store query is scoped by it.
type Owner string

type Phase string

const (
	PhaseMenstruation Phase = "menstruation"
	PhaseFollicular   Phase = "follicular"
	PhaseOvulation    Phase = "ovulation"
	PhaseLuteal       Phase = "luteal"
)

// AllPhases returns the phases in cycle order.
func AllPhases() []Phase {
	return []Phase{PhaseMenstruation, PhaseFollicular, PhaseOvulation, PhaseLuteal}
}

// ParsePhase accepts a phase name in any case.
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PhaseMenstruation, PhaseFollicular, PhaseOvulation, PhaseLuteal:
		return p, nil
	}
	return "", fmt.Errorf("unknown phase %q (want menstruation, follicular, ovulation or luteal)", s)
}

func (p Phase) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

func (p Phase) Emoji() string {
	switch p {
	case PhaseMenstruation:
		return "🌙"
	case PhaseFollicular:
		return "🌱"
	case PhaseOvulation:
		return "☀️"
	case PhaseLuteal:
		return "🍂"
	default:
		return "·"
	}
}

func (p Phase) Description() string {
	switch p {
	case PhaseMenstruation:
		return "Rest & restore"
	case PhaseFollicular:
		return "Rising energy"
	case PhaseOvulation:
		return "Peak vitality"
	case PhaseLuteal:
		return "Winding down"
	default:
		return ""
	}
}

type ActivityType string

const (
	ActivityExercise     ActivityType = "exercise"
	ActivityMeal         ActivityType = "meal"
	ActivityWellbeing    ActivityType = "wellbeing"
	ActivitySelfCare     ActivityType = "self_care"
	ActivityProductivity ActivityType = "productivity"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[ActivityType]bool{
	ActivityExercise:     true,
	ActivityMeal:         true,
	ActivityWellbeing:    true,
	ActivitySelfCare:     true,
	ActivityProductivity: true,
}

// ParseActivityType accepts "self-care" and "Self_care" style spellings.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !ValidActivityTypes[t] {
		return "", fmt.Errorf("unknown activity type %q", s)
	}
	return t, nil
}

func (t ActivityType) Emoji() string {
	switch t {
	case ActivityExercise:
		return "💪"
	case ActivityMeal:
		return "🥗"
	case ActivityWellbeing:
		return "🧘"
	case ActivitySelfCare:
		return "✨"
	case ActivityProductivity:
		return "📝"
	default:
		return "•"
	}
}
