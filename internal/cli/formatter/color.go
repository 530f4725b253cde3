package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseColor is the accent used for a phase everywhere in the CLI.
func PhaseColor(p domain.Phase) lipgloss.Color {
	switch p {
	case domain.PhaseMenstruation:
		return ColorRed
	case domain.PhaseFollicular:
		return ColorGreen
	case domain.PhaseOvulation:
		return ColorYellow
	case domain.PhaseLuteal:
		return ColorPurple
	default:
		return ColorDim
	}
}

func PhaseStyle(p domain.Phase) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PhaseColor(p))
}

// PhaseBadge renders e.g. "🌱 Follicular" in the phase colour.
func PhaseBadge(p domain.Phase) string {
	if p == "" {
		return StyleDim.Render("--")
	}
	return PhaseStyle(p).Render(p.Emoji() + " " + p.Label())
}

// PhaseList renders a compact comma-separated list of phase labels.
func PhaseList(phases []domain.Phase) string {
	parts := make([]string, len(phases))
	for i, p := range phases {
		parts[i] = PhaseStyle(p).Render(p.Label())
	}
	return strings.Join(parts, Dim(", "))
}

// TypeBadge renders an activity type with its emoji, e.g. "💪 exercise".
func TypeBadge(t domain.ActivityType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	return StyleBlue.Render(fmt.Sprintf("%s %s", t.Emoji(), label))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
