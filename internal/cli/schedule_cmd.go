package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cyclesync/internal/cli/formatter"
	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"sched"},
		Short:   "Plan activities into a week",
	}

	cmd.AddCommand(
		newScheduleShowCmd(app),
		newScheduleAddCmd(app),
		newScheduleMoveCmd(app),
		newScheduleRemoveCmd(app),
		newScheduleDoneCmd(app),
		newScheduleDraftCmd(app),
	)

	return cmd
}

// weekOf aligns any date (today when zero) to its Sunday.
func (a *App) weekOf(t time.Time) time.Time {
	return domain.WeekStartOf(a.refDate(t))
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var week time.Time

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a week's plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := app.weekOf(week)
			items, err := app.Schedule.Week(cmd.Context(), app.Owner, start)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(start, items))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&week), "week", "Any date in the week (default this week)")
	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var activityID string
	var week time.Time
	var day int
	var start domain.Clock

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Place an activity on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Schedule.Place(cmd.Context(), app.Owner, activityID, app.weekOf(week), day, start)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s on %s %s (%s)\n",
				activityID, formatter.DayLabel(entry.DayOfWeek), formatter.Slot(entry), entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&activityID, "activity", "", "Activity ID")
	cmd.Flags().Var(newDateValue(&week), "week", "Any date in the week (default this week)")
	cmd.Flags().Var(newDayValue(&day), "day", "Day of week: 0-6 or sun..sat")
	cmd.Flags().Var(newClockValue(&start), "start", "Start time (HH:MM)")
	_ = cmd.MarkFlagRequired("activity")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newScheduleMoveCmd(app *App) *cobra.Command {
	var day int
	var start domain.Clock

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move an entry to another day or time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Schedule.Move(cmd.Context(), app.Owner, args[0], day, start)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s %s\n", formatter.DayLabel(entry.DayOfWeek), formatter.Slot(entry))
			return nil
		},
	}

	cmd.Flags().Var(newDayValue(&day), "day", "Day of week: 0-6 or sun..sat")
	cmd.Flags().Var(newClockValue(&start), "start", "Start time (HH:MM)")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.Remove(cmd.Context(), app.Owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newScheduleDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark an entry completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Schedule.SetCompleted(cmd.Context(), app.Owner, args[0], !undo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Check(entry.IsCompleted), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as not completed")
	return cmd
}

func newScheduleDraftCmd(app *App) *cobra.Command {
	var week time.Time
	var dryRun, noOverlap bool
	var seed uint64
	var bands string

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Replace a week with a random plan drawn from your activities",
		Long: "Deletes every entry of the week and schedules 2-3 of your active activities\n" +
			"per day, chosen for that day's phase. Use --dry-run to preview.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := contract.NewAutoDraftRequest(app.Owner, app.weekOf(week))
			req.DryRun = dryRun
			req.NoOverlap = noOverlap || app.NoOverlap
			req.Bands = bands
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			resp, err := app.Schedule.AutoDraft(ctx, req)
			if err != nil {
				return err
			}

			catalog, err := app.Activities.Catalog(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(catalog))
			for _, a := range catalog {
				names[a.ID] = a.Name
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDraft(resp, names))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&week), "week", "Any date in the week (default this week)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without saving")
	cmd.Flags().BoolVar(&noOverlap, "no-overlap", false, "Keep a day's activities from overlapping")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible draft")
	cmd.Flags().StringVar(&bands, "bands", "fixed", "Phase bands: fixed or proportional")
	return cmd
}
