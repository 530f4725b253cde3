package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/cyclesync/internal/config"
	"github.com/spf13/cobra"
)

func newRemindCmd(app *App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the daily digest reminder",
		Long: "Without --once, runs in the foreground and sends the digest on the configured\n" +
			"cron schedule, picking up config file changes as they happen.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Reminder == nil {
				return fmt.Errorf("reminder is not configured")
			}
			if once {
				_, err := app.Reminder.RunOnce(cmd.Context())
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watchDone := make(chan struct{})
			if app.WatchConfig == nil {
				close(watchDone)
			} else {
				go func() {
					defer close(watchDone)
					err := app.WatchConfig(ctx, func(cfg config.Config) {
						_ = app.Reminder.Reload(ctx, cfg)
					})
					if err != nil {
						app.Log.Warn().Err(err).Msg("config watch failed; edits need a restart")
					}
				}()
			}

			runErr := app.Reminder.Run(ctx)
			stop()
			<-watchDone
			if runErr != nil {
				return fmt.Errorf("reminder: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Send today's digest now and exit")
	return cmd
}
