package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/cyclesync/internal/config"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/reminder"
	"github.com/alexanderramin/cyclesync/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Reminder is the part of the reminder daemon the CLI drives.
type Reminder interface {
	RunOnce(ctx context.Context) (reminder.Digest, error)
	Run(ctx context.Context) error
	Reload(ctx context.Context, cfg config.Config) error
}

// App holds the services and settings used by CLI commands.
type App struct {
	Cycle      service.CycleService
	Activities service.ActivityService
	Schedule   service.ScheduleService
	Today      service.TodayService
	Import     service.ImportService
	Reminder   Reminder

	Owner     domain.Owner
	NoOverlap bool

	// Log receives background failures; the zero logger discards them.
	Log zerolog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive gates huh forms and the discover deck.
	IsInteractive func() bool
	// WatchConfig, when set, streams config reloads to the reminder daemon.
	WatchConfig func(ctx context.Context, onChange func(config.Config)) error
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// refDate is the given date, or today when on is zero.
func (a *App) refDate(on time.Time) time.Time {
	if on.IsZero() {
		return a.now()
	}
	return on
}

// NewRootCmd creates the top-level "cyclesync" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cyclesync",
		Short:         "Plan activities around your menstrual cycle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTodayCmd(app),
		newCycleCmd(app),
		newActivityCmd(app),
		newScheduleCmd(app),
		newRemindCmd(app),
	)

	return root
}
