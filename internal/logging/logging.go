// Package logging builds the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05"

type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	File   string // optional; always JSON
}

// New returns a logger writing to w, plus cfg.File when set. The returned
// close func releases the file and is safe to call when no file is open.
func New(cfg Config, w io.Writer) (zerolog.Logger, func() error, error) {
	zerolog.ErrorFieldName = "err"
	level := ParseLevel(cfg.Level, zerolog.InfoLevel)

	var out io.Writer = w
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") || cfg.Format == "" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: !isTerminal(w)}
	}

	closeFn := func() error { return nil }
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("opening log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(out, f)
		closeFn = f.Close
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a zerolog level, returning def for
// anything it does not recognise.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return def
	}
}
