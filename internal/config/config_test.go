package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWith_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadWith(filepath.Join(t.TempDir(), "absent.yaml"), noEnv)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def, cfg)
	assert.Equal(t, "0 8 * * *", cfg.Reminder.Cron)
	assert.Equal(t, 2, cfg.Reminder.PeriodWarningDays)
	assert.Equal(t, 30, cfg.Reminder.MaxPerMinute)
	assert.False(t, cfg.Scheduler.NoOverlap)
}

func TestLoadWith_YAMLOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
owner: sam
log:
  level: debug
  format: json
reminder:
  cron: "30 7 * * *"
  timezone: UTC
scheduler:
  no_overlap: true
`)
	cfg, err := LoadWith(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "sam", cfg.Owner)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "30 7 * * *", cfg.Reminder.Cron)
	assert.Equal(t, 2, cfg.Reminder.PeriodWarningDays, "unset keys keep defaults")
	assert.True(t, cfg.Scheduler.NoOverlap)
	assert.Equal(t, Default().DBPath, cfg.DBPath)
}

func TestLoadWith_JSONFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{"db_path": "/tmp/x.db", "reminder": {"period_warning_days": 4}}`)
	cfg, err := LoadWith(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.Reminder.PeriodWarningDays)
}

func TestLoadWith_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "config.yaml", "reminder:\n  crontab: daily\n")
	_, err := LoadWith(path, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crontab")
}

func TestLoadWith_EnvWins(t *testing.T) {
	path := writeConfig(t, "config.yaml", "owner: file-owner\n")
	cfg, err := LoadWith(path, envMap(map[string]string{
		EnvOwner:       "env-owner",
		EnvDB:          ":memory:",
		EnvRemindCron:  "0 9 * * 1-5",
		EnvNoOverlap:   "true",
		EnvWarningDays: "5",
		EnvTimezone:    "UTC",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env-owner", cfg.Owner)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "0 9 * * 1-5", cfg.Reminder.Cron)
	assert.True(t, cfg.Scheduler.NoOverlap)
	assert.Equal(t, 5, cfg.Reminder.PeriodWarningDays)
}

func TestLoadWith_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"format":   "log:\n  format: xml\n",
		"timezone": "reminder:\n  timezone: Mars/Olympus\n",
		"rate":     "reminder:\n  max_per_minute: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(writeConfig(t, "config.yaml", body), noEnv)
			assert.Error(t, err)
		})
	}
}

func TestLoadWith_MalformedEnvRejected(t *testing.T) {
	cases := map[string]map[string]string{
		"no overlap yes":     {EnvNoOverlap: "yes"},
		"warning days word":  {EnvWarningDays: "two"},
		"warning days minus": {EnvWarningDays: "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith("", envMap(env))
			assert.Error(t, err)
		})
	}

	cfg, err := LoadWith("", envMap(map[string]string{EnvNoOverlap: " false ", EnvWarningDays: "0"}))
	require.NoError(t, err)
	assert.False(t, cfg.Scheduler.NoOverlap)
	assert.Equal(t, 0, cfg.Reminder.PeriodWarningDays)
}

func TestEnvLookup_RealEnvBeatsDotenv(t *testing.T) {
	t.Setenv(EnvOwner, "real")
	get := envLookup(map[string]string{EnvOwner: "dotenv", EnvLogLevel: "debug"})

	assert.Equal(t, "real", get(EnvOwner))
	assert.Equal(t, "debug", get(EnvLogLevel))
}

func TestPath_FromEnv(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/cyclesync.yaml")
	assert.Equal(t, "/etc/cyclesync.yaml", Path())
}
