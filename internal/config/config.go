// Package config loads cyclesync settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"
)

const (
	EnvConfig       = "CYCLESYNC_CONFIG"
	EnvDB           = "CYCLESYNC_DB"
	EnvOwner        = "CYCLESYNC_OWNER"
	EnvLogLevel     = "CYCLESYNC_LOG_LEVEL"
	EnvLogFormat    = "CYCLESYNC_LOG_FORMAT"
	EnvLogFile      = "CYCLESYNC_LOG_FILE"
	EnvRemindCron   = "CYCLESYNC_REMIND_CRON"
	EnvTimezone     = "CYCLESYNC_TZ"
	EnvNoOverlap    = "CYCLESYNC_NO_OVERLAP"
	EnvWarningDays  = "CYCLESYNC_PERIOD_WARNING_DAYS"
	DefaultRemindAt = "0 8 * * *"
)

type Config struct {
	DBPath    string          `json:"db_path"`
	Owner     string          `json:"owner"`
	Log       LogConfig       `json:"log"`
	Reminder  ReminderConfig  `json:"reminder"`
	Scheduler SchedulerConfig `json:"scheduler"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file"`
}

type ReminderConfig struct {
	Cron              string `json:"cron"`
	Timezone          string `json:"timezone"`
	PeriodWarningDays int    `json:"period_warning_days"`
	MaxPerMinute      int    `json:"max_per_minute"`
}

type SchedulerConfig struct {
	NoOverlap bool `json:"no_overlap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath: filepath.Join(homeDir(), ".cyclesync", "cyclesync.db"),
		Owner:  defaultOwner(),
		Log:    LogConfig{Level: "info", Format: "console"},
		Reminder: ReminderConfig{
			Cron:              DefaultRemindAt,
			Timezone:          "Local",
			PeriodWarningDays: 2,
			MaxPerMinute:      30,
		},
	}
}

// Path returns the config file location: $CYCLESYNC_CONFIG or
// ~/.cyclesync/config.yaml.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".cyclesync", "config.yaml")
}

// Load reads the config file at path (a missing file is fine), then the
// .env file in the working directory, then the process environment.
func Load(path string) (Config, error) {
	dotenv, err := godotenv.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}
	return LoadWith(path, envLookup(dotenv))
}

// LoadWith is Load with an explicit variable lookup.
func LoadWith(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := decodeInto(&cfg, path, data); err != nil {
				return Config{}, err
			}
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envLookup prefers the real environment over values from .env.
func envLookup(dotenv map[string]string) func(string) string {
	return func(k string) string {
		if v, ok := os.LookupEnv(k); ok {
			return v
		}
		return dotenv[k]
	}
}

// decodeInto overlays the file onto cfg. YAML is converted to JSON so both
// formats share the strict decoder.
func decodeInto(cfg *Config, path string, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		j, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		data = j
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables. Malformed numbers and booleans
// are errors rather than silently keeping the previous value.
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(EnvOwner); v != "" {
		cfg.Owner = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := getenv(EnvRemindCron); v != "" {
		cfg.Reminder.Cron = v
	}
	if v := getenv(EnvTimezone); v != "" {
		cfg.Reminder.Timezone = v
	}
	if v := getenv(EnvWarningDays); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvWarningDays, v)
		}
		cfg.Reminder.PeriodWarningDays = n
	}
	if v := getenv(EnvNoOverlap); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean (use true or false)", EnvNoOverlap, v)
		}
		cfg.Scheduler.NoOverlap = b
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("owner is required")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Reminder.PeriodWarningDays < 0 {
		return fmt.Errorf("reminder.period_warning_days must not be negative")
	}
	if c.Reminder.MaxPerMinute <= 0 {
		return fmt.Errorf("reminder.max_per_minute must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the reminder timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Reminder.Timezone)
	if err != nil {
		return nil, fmt.Errorf("reminder.timezone: %w", err)
	}
	return loc, nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return h
	}
	return "."
}

func defaultOwner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "me"
}
