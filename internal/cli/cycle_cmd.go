package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cyclesync/internal/cli/formatter"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/spf13/cobra"
)

func newCycleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "View and configure cycle settings",
	}

	cmd.AddCommand(
		newCycleShowCmd(app),
		newCycleSetCmd(app),
		newCycleCalendarCmd(app),
	)

	return cmd
}

func newCycleShowCmd(app *App) *cobra.Command {
	var on time.Time

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show settings and the current phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref := app.refDate(on)
			settings, err := app.Cycle.Get(ctx, app.Owner)
			if err != nil {
				return err
			}
			info, err := app.Cycle.Info(ctx, app.Owner, ref)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCycleInfo(settings, info, ref))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&on), "date", "Reference date (YYYY-MM-DD)")
	return cmd
}

func newCycleSetCmd(app *App) *cobra.Command {
	var cycleLen, periodLen int
	var lastStart time.Time

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set cycle length, period length and last period start",
		Long: "Set cycle settings. Without flags on a terminal an interactive form is shown;\n" +
			"flags that are not given keep their stored (or default) values.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			existing, err := app.Cycle.Get(ctx, app.Owner)
			if err != nil {
				return err
			}

			next := &domain.CycleSettings{
				CycleLengthDays:  domain.DefaultCycleLengthDays,
				PeriodLengthDays: domain.DefaultPeriodLengthDays,
			}
			if existing != nil {
				*next = *existing
			}

			flags := cmd.Flags()
			anyFlag := flags.Changed("cycle") || flags.Changed("period") || flags.Changed("last-start")
			switch {
			case anyFlag:
				if flags.Changed("cycle") {
					next.CycleLengthDays = cycleLen
				}
				if flags.Changed("period") {
					next.PeriodLengthDays = periodLen
				}
				if flags.Changed("last-start") {
					next.LastPeriodStart = lastStart
				}
			case app.interactive():
				if err := runCycleForm(next); err != nil {
					return err
				}
			default:
				return fmt.Errorf("nothing to set: pass --cycle, --period or --last-start")
			}

			saved, err := app.Cycle.Save(ctx, app.Owner, next)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %d-day cycle, %d-day period, last started %s\n",
				saved.CycleLengthDays, saved.PeriodLengthDays, saved.LastPeriodStart.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().IntVar(&cycleLen, "cycle", domain.DefaultCycleLengthDays,
		fmt.Sprintf("Cycle length in days (%d-%d)", domain.MinCycleLengthDays, domain.MaxCycleLengthDays))
	cmd.Flags().IntVar(&periodLen, "period", domain.DefaultPeriodLengthDays,
		fmt.Sprintf("Period length in days (%d-%d)", domain.MinPeriodLengthDays, domain.MaxPeriodLengthDays))
	cmd.Flags().Var(newDateValue(&lastStart), "last-start", "First day of the last period (YYYY-MM-DD)")
	return cmd
}

func newCycleCalendarCmd(app *App) *cobra.Command {
	var week time.Time
	var bands string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Project the phase of each day of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.Cycle.Calendar(cmd.Context(), app.Owner, app.refDate(week), bands)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(cal))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&week), "week", "Any date in the week to show (default this week)")
	cmd.Flags().StringVar(&bands, "bands", "fixed", "Phase bands: fixed or proportional")
	return cmd
}
