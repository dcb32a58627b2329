// Package log configures the structured logger used by the vtrim CLI.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time

	closer io.Closer
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
}

// New returns a text logger on stderr, or a JSON logger writing to a
// rotated file when file is non-empty.
func New(level string, file string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	l := &Logger{Start: time.Now()}
	if file == "" {
		l.Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
		return l, nil
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    16, // MB
		MaxBackups: 2,
	}
	if lvl == slog.LevelDebug {
		w.MaxSize = 128
	}
	l.Logger = slog.New(slog.NewJSONHandler(w, opts))
	l.LogFile = w.Filename
	l.closer = w
	return l, nil
}

// NewWriter logs JSON records to w. Used by tests and embedding code.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
		Start:  time.Now(),
	}
}

// Discard drops every record.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})),
		Start:  time.Now(),
	}
}

func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	l.Info("shutting down", slog.Duration("elapsed", time.Since(l.Start)))
	return l.closer.Close()
}
