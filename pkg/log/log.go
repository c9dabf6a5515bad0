package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance, configured once via Init
var Logger zerolog.Logger

// Level represents log level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// zerologLevels maps configuration levels onto zerolog's scale
var zerologLevels = map[Level]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
}

// ParseLevel normalizes a level string from flags or config files.
// Unknown values fall back to info.
func ParseLevel(s string) Level {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := zerologLevels[level]; !ok {
		return InfoLevel
	}
	return level
}

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// sink picks the writer events are rendered to: the raw output for
// JSON logs, or a console writer for human-readable ones
func (c Config) sink() io.Writer {
	out := c.Output
	if out == nil {
		out = os.Stdout
	}
	if c.JSONOutput {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the global logger
func Init(cfg Config) {
	level, ok := zerologLevels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	Logger = zerolog.New(cfg.sink()).With().Timestamp().Logger()
}

// WithComponent creates a child logger with component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithSessionID creates a child logger with session_id field
func WithSessionID(sessionID string) zerolog.Logger {
	return Logger.With().Str("session_id", sessionID).Logger()
}

// WithDatabase creates a child logger with database field
func WithDatabase(database string) zerolog.Logger {
	return Logger.With().Str("database", database).Logger()
}
