package log

import (
	"log/slog"
	"strings"
	"time"
)

// Config controls which destinations are active and at which level.
type Config struct {
	StdoutEnabled bool
	StdoutLevel   slog.Level
	StderrEnabled bool
	StderrLevel   slog.Level
	FileConfig    *LogfileConfig
}

// LogfileConfig configures the rotating file destination.
type LogfileConfig struct {
	Dir          string
	Prefix       string
	Level        slog.Level
	RotatePeriod time.Duration
}

func defaultConfig() *Config {
	return &Config{
		StdoutEnabled: true,
		StdoutLevel:   slog.LevelInfo,
		StderrEnabled: true,
		StderrLevel:   slog.LevelError,
	}
}

// ParseLevel maps a level name from the CLI to a slog.Level, defaulting to
// info for unknown names.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
