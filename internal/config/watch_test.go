package config

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "config.yaml", "reminder:\n  cron: \"0 8 * * *\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var latest atomic.Value
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(c Config) { latest.Store(c.Reminder.Cron) })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("reminder:\n  cron: \"15 21 * * *\"\n"), 0o644))

	require.Eventually(t, func() bool {
		v, _ := latest.Load().(string)
		return v == "15 21 * * *"
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/definitely/not/here/config.yaml", zerolog.Nop(), func(Config) {})
	require.Error(t, err)
}
