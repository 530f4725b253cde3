package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/cli/formatter"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// cyclesyncHuhTheme returns a huh theme using the formatter palette.
func cyclesyncHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// cycleFormValues holds the form's raw text, prefilled from settings.
type cycleFormValues struct {
	LastStart string
	Cycle     string
	Period    string
}

func newCycleFormValues(s *domain.CycleSettings) *cycleFormValues {
	v := &cycleFormValues{
		Cycle:  strconv.Itoa(s.CycleLengthDays),
		Period: strconv.Itoa(s.PeriodLengthDays),
	}
	if !s.LastPeriodStart.IsZero() {
		v.LastStart = s.LastPeriodStart.Format(domain.DateLayout)
	}
	return v
}

// apply copies validated form values into s.
func (v *cycleFormValues) apply(s *domain.CycleSettings) error {
	start, err := domain.ParseDate(strings.TrimSpace(v.LastStart))
	if err != nil {
		return err
	}
	cycle, err := strconv.Atoi(strings.TrimSpace(v.Cycle))
	if err != nil {
		return fmt.Errorf("cycle length: %w", err)
	}
	period, err := strconv.Atoi(strings.TrimSpace(v.Period))
	if err != nil {
		return fmt.Errorf("period length: %w", err)
	}
	s.LastPeriodStart, s.CycleLengthDays, s.PeriodLengthDays = start, cycle, period
	return nil
}

func cycleForm(v *cycleFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Last period start").
				Description("First day of your most recent period").
				Placeholder("2024-01-07").
				Value(&v.LastStart).
				Validate(validateDate),
			huh.NewInput().
				Title("Cycle length (days)").
				Value(&v.Cycle).
				Validate(validateIntRange(domain.MinCycleLengthDays, domain.MaxCycleLengthDays)),
			huh.NewInput().
				Title("Period length (days)").
				Value(&v.Period).
				Validate(validateIntRange(domain.MinPeriodLengthDays, domain.MaxPeriodLengthDays)),
		),
	).WithTheme(cyclesyncHuhTheme()).WithShowHelp(false)
}

// runCycleForm prompts for settings and writes the answers into s.
func runCycleForm(s *domain.CycleSettings) error {
	v := newCycleFormValues(s)
	if err := cycleForm(v).Run(); err != nil {
		return err
	}
	return v.apply(s)
}

func validateDate(s string) error {
	if _, err := domain.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}
