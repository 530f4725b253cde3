// Package reminder runs the daily digest job: a cron entry that builds the
// owner's phase summary and warns when the next period is close.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/cyclesync/internal/config"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Both 5-field and 6-field (with seconds) specs are accepted, plus
// descriptors such as @daily.
var specParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSpec validates a cron spec.
func ParseSpec(spec string) (cron.Schedule, error) {
	s, err := specParser.Parse(strings.TrimSpace(spec))
	if err != nil {
		return nil, fmt.Errorf("invalid reminder cron %q: %w", spec, err)
	}
	return s, nil
}

type Daemon struct {
	mu       sync.Mutex
	today    service.TodayService
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time

	owner domain.Owner
	cfg   config.ReminderConfig
	loc   *time.Location

	c     *cron.Cron
	entry cron.EntryID
}

func New(cfg config.Config, today service.TodayService, notifier Notifier, log zerolog.Logger) (*Daemon, error) {
	d := &Daemon{
		today:    today,
		notifier: notifier,
		log:      log.With().Str("comp", "reminder").Logger(),
		now:      time.Now,
	}
	if err := d.apply(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// apply validates cfg and stores it. Callers hold mu or own d exclusively.
func (d *Daemon) apply(cfg config.Config) error {
	if _, err := ParseSpec(cfg.Reminder.Cron); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	d.owner = domain.Owner(cfg.Owner)
	d.cfg = cfg.Reminder
	d.loc = loc
	return nil
}

// RunOnce builds and delivers today's digest.
func (d *Daemon) RunOnce(ctx context.Context) (Digest, error) {
	d.mu.Lock()
	owner, warn, loc := d.owner, d.cfg.PeriodWarningDays, d.loc
	d.mu.Unlock()

	now := d.now().In(loc)
	today, err := d.today.Today(ctx, owner, now)
	if err != nil {
		return Digest{}, fmt.Errorf("building digest: %w", err)
	}
	digest := NewDigest(owner, today, warn)
	if err := d.notifier.Notify(ctx, digest); err != nil {
		return digest, err
	}
	d.log.Info().
		Str("owner", string(owner)).
		Str("phase", string(digest.Info.Phase)).
		Int("cycle_day", digest.Info.CycleDay).
		Bool("period_soon", digest.PeriodSoon).
		Int("agenda", len(digest.Agenda)).
		Msg("digest delivered")
	return digest, nil
}

// Start registers the digest job and starts triggering. It is a no-op when
// already started.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.c != nil {
		return nil
	}
	d.c = cron.New(cron.WithParser(specParser), cron.WithLocation(d.loc))
	if err := d.registerLocked(ctx); err != nil {
		d.c = nil
		return err
	}
	d.c.Start()
	d.log.Info().Str("cron", d.cfg.Cron).Str("tz", d.loc.String()).Msg("reminder started")
	return nil
}

func (d *Daemon) registerLocked(ctx context.Context) error {
	id, err := d.c.AddFunc(d.cfg.Cron, func() {
		d.log.Debug().Msg("reminder tick")
		if _, err := d.RunOnce(ctx); err != nil {
			d.log.Error().Err(err).Msg("reminder failed")
		}
	})
	if err != nil {
		return fmt.Errorf("registering reminder: %w", err)
	}
	d.entry = id
	return nil
}

// Reload swaps in a new configuration. An invalid one is rejected and the
// running schedule is kept. A timezone change restarts the cron runner.
func (d *Daemon) Reload(ctx context.Context, cfg config.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	oldCron, oldLoc := d.cfg.Cron, d.loc
	if err := d.apply(cfg); err != nil {
		d.log.Warn().Err(err).Msg("reminder reload rejected")
		return err
	}
	if d.c == nil {
		return nil
	}
	if oldCron == d.cfg.Cron && oldLoc.String() == d.loc.String() {
		d.log.Debug().Msg("reminder schedule unchanged")
		return nil
	}

	if oldLoc.String() != d.loc.String() {
		d.c.Stop()
		d.c = cron.New(cron.WithParser(specParser), cron.WithLocation(d.loc))
		defer d.c.Start()
	} else {
		d.c.Remove(d.entry)
	}
	if err := d.registerLocked(ctx); err != nil {
		return err
	}
	d.log.Info().Str("cron", d.cfg.Cron).Str("tz", d.loc.String()).Msg("reminder rescheduled")
	return nil
}

// Next reports when the digest job fires next; zero when not started.
func (d *Daemon) Next() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.c == nil {
		return time.Time{}
	}
	return d.c.Entry(d.entry).Next
}

// Stop halts triggering and waits for a running job, or for ctx.
func (d *Daemon) Stop(ctx context.Context) {
	d.mu.Lock()
	c := d.c
	d.c = nil
	d.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
	d.log.Info().Msg("reminder stopped")
}

// Run starts the daemon and blocks until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Stop(stopCtx)
	return nil
}
