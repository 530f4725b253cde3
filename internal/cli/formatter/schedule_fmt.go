package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

// FormatWeek renders a week's entries grouped by day, Sunday first.
func FormatWeek(weekStart time.Time, items []contract.AgendaItem) string {
	byDay := make([][]contract.AgendaItem, 7)
	for _, it := range items {
		if domain.ValidDayOfWeek(it.Entry.DayOfWeek) {
			byDay[it.Entry.DayOfWeek] = append(byDay[it.Entry.DayOfWeek], it)
		}
	}

	var b strings.Builder
	for day, entries := range byDay {
		date := weekStart.AddDate(0, 0, day)
		b.WriteString(Bold(DayLabel(day)) + " " + Dim(date.Format("02 Jan")) + "\n")
		if len(entries) == 0 {
			b.WriteString(Dim("  -") + "\n")
			continue
		}
		for _, it := range entries {
			fmt.Fprintf(&b, "  %s %s  %s  %s\n", Check(it.Entry.IsCompleted), Slot(it.Entry), it.Name(), Dim(it.Entry.ID))
		}
	}
	return RenderBox("Week of "+weekStart.Format(domain.DateLayout), b.String())
}

// FormatDraft summarises an auto-draft: per-day phase and picks, then the
// entries created.
func FormatDraft(resp *contract.AutoDraftResponse, names map[string]string) string {
	if resp.Skipped {
		return StyleYellow.Render("No active activities; the week was left unchanged.") + "\n" +
			Dim("Accept some with `cyclesync activity discover` first.") + "\n"
	}

	var b strings.Builder
	for _, d := range resp.Days {
		note := ""
		if d.UsedFallback {
			note = StyleYellow.Render("  (no match for phase, drew from all)")
		}
		fmt.Fprintf(&b, "%s %s  %s  %d picked%s\n",
			Bold(DayLabel(d.DayOfWeek)), Dim(d.Date.Format("02 Jan")), PhaseBadge(d.Phase), d.Picked, note)
		for _, e := range resp.Created {
			if e.DayOfWeek != d.DayOfWeek {
				continue
			}
			name := names[e.ActivityID]
			if name == "" {
				name = e.ActivityID
			}
			fmt.Fprintf(&b, "    %s  %s\n", Slot(&e), name)
		}
	}

	b.WriteString("\n")
	if resp.DryRun {
		fmt.Fprintf(&b, "%s would replace %d entries with %d.\n", StyleYellow.Render("Dry run:"), resp.Deleted, len(resp.Created))
	} else {
		fmt.Fprintf(&b, "%s replaced %d entries with %d.\n", StyleGreen.Render("Drafted:"), resp.Deleted, len(resp.Created))
	}
	return RenderBox("Auto-draft "+resp.WeekStart.Format(domain.DateLayout), b.String())
}
