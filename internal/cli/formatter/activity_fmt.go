package formatter

import (
	"strings"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

// FormatActivityTable lists catalog entries.
func FormatActivityTable(title string, acts []*domain.Activity) string {
	if len(acts) == 0 {
		return Dim("No activities found.") + "\n"
	}
	headers := []string{"ID", "NAME", "TYPE", "PHASES", "TIME"}
	rows := make([][]string, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, []string{
			Dim(a.ID),
			a.DisplayEmoji() + " " + a.Name,
			TypeBadge(a.Type),
			PhaseList(a.Phases),
			FormatMinutes(a.EffectiveDuration()),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatOwned lists the owner's active activities, favourites starred.
func FormatOwned(owned []contract.OwnedActivity) string {
	if len(owned) == 0 {
		return Dim("No active activities. Try `cyclesync activity discover`.") + "\n"
	}
	headers := []string{"", "ID", "NAME", "TYPE", "PHASES"}
	rows := make([][]string, 0, len(owned))
	for _, o := range owned {
		star := " "
		if o.Choice.IsFavorite {
			star = StyleYellow.Render("★")
		}
		rows = append(rows, []string{
			star,
			Dim(o.Activity.ID),
			o.Activity.DisplayEmoji() + " " + o.Activity.Name,
			TypeBadge(o.Activity.Type),
			PhaseList(o.Activity.Phases),
		})
	}
	return RenderBox("My activities", RenderTable(headers, rows))
}

// FormatActivityCard renders one activity in full, as shown in the
// discover deck.
func FormatActivityCard(a *domain.Activity) string {
	var b strings.Builder
	b.WriteString(a.DisplayEmoji() + "  " + Bold(a.Name) + "\n")
	b.WriteString(TypeBadge(a.Type) + Dim("  ·  ") + FormatMinutes(a.EffectiveDuration()) + "\n")
	b.WriteString(PhaseList(a.Phases) + "\n")
	if a.Description != "" {
		b.WriteString("\n" + StyleFg.Render(a.Description) + "\n")
	}
	for _, benefit := range a.Benefits {
		b.WriteString(StyleGreen.Render("  + ") + benefit + "\n")
	}
	if a.ArticleURL != "" {
		b.WriteString("\n" + StyleBlue.Render(a.ArticleURL) + "\n")
	}
	return b.String()
}
