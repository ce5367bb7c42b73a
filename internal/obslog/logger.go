// Package obslog provides the simulation's two distinct output channels:
// a structured diagnostic Logger (slog over a rotating file sink) and a
// plain-text Narrator for the fixed, human-readable lines the simulation
// prints as observable output.
package obslog

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog for structured diagnostics: startup configuration,
// input-parse warnings, and assertion context. It is independent of the
// printed-line output the Narrator owns instead.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New returns a Logger writing level-filtered structured logs to a
// rotating JSON file in dir when dir is non-empty, and as text to stderr
// otherwise; it never writes to both.
func New(level string, dir string) *Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lv}
	l := &Logger{}
	if dir == "" {
		l.Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
		return l
	}

	l.file = &lumberjack.Logger{
		Filename: dir + "/runwaysim.log",
		MaxSize:  10, // megabytes
		MaxAge:   7,  // days
		Compress: true,
	}
	l.Logger = slog.New(slog.NewJSONHandler(l.file, opts))
	return l
}

// Close flushes and closes the rotating file sink, if one is in use.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
