package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/cyclesync/internal/cli"
	"github.com/alexanderramin/cyclesync/internal/config"
	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/logging"
	"github.com/alexanderramin/cyclesync/internal/reminder"
	"github.com/alexanderramin/cyclesync/internal/repository"
	"github.com/alexanderramin/cyclesync/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	activityRepo := repository.NewSQLiteActivityRepo(database)
	choiceRepo := repository.NewSQLiteUserActivityRepo(database)
	settingsRepo := repository.NewSQLiteCycleSettingsRepo(database)
	scheduleRepo := repository.NewSQLiteScheduledActivityRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	calc := cycle.NewCalculator()
	observer := service.NewLogUseCaseObserver(logger)

	importSvc := service.NewImportService(activityRepo, uow, observer)
	todaySvc := service.NewTodayService(activityRepo, settingsRepo, scheduleRepo, calc)

	ctx := context.Background()
	if res, err := importSvc.SeedDefaultCatalog(ctx); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	} else if !res.Skipped {
		logger.Info().Int("activities", res.Activities).Msg("seeded default catalog")
	}

	daemon, err := reminder.New(cfg, todaySvc, reminder.NewWriterNotifier(os.Stdout, cfg.Reminder.MaxPerMinute), logger)
	if err != nil {
		return err
	}

	app := &cli.App{
		Cycle:      service.NewCycleService(settingsRepo, scheduleRepo, calc, observer),
		Activities: service.NewActivityService(activityRepo, choiceRepo, settingsRepo, uow, calc, observer),
		Schedule:   service.NewScheduleService(activityRepo, choiceRepo, settingsRepo, scheduleRepo, uow, observer),
		Today:      todaySvc,
		Import:     importSvc,
		Reminder:   daemon,

		Owner:     domain.Owner(cfg.Owner),
		NoOverlap: cfg.Scheduler.NoOverlap,
		Log:       logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.WatchConfig = func(ctx context.Context, onChange func(config.Config)) error {
		return config.Watch(ctx, cfgPath, logger, onChange)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
