package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content) + "\n"
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title))+"\n\n"+content) + "\n"
}

// DayLabels are the short weekday names, Sunday first.
var DayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayLabel returns the short name of a 0..6 day offset.
func DayLabel(day int) string {
	if !domain.ValidDayOfWeek(day) {
		return "?"
	}
	return DayLabels[day]
}

// RelativeDays describes a whole-day distance: "today", "tomorrow", "in 5 days".
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

// HumanDate formats a calendar date as "Tue 09 Jan".
func HumanDate(t time.Time) string {
	return t.Format("Mon 02 Jan")
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// Slot renders "07:00-07:30".
func Slot(e *domain.ScheduledActivity) string {
	return e.StartTime.String() + "-" + e.EndTime.String()
}

// Check renders a completion mark.
func Check(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}
