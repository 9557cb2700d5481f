// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/uccmake/internal/ui/output"
)

// LevelFatal is the slog level of fatal records.
const LevelFatal = slog.Level(12)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
	format domain.LogFormat
	output io.Writer
	pretty bool
}

// New creates a Logger writing to stderr in the auto format.
func New() *Logger {
	l := &Logger{
		format: domain.LogFormatAuto,
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination, keeping the format.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetFormat switches the record format, keeping the output destination.
func (l *Logger) SetFormat(format domain.LogFormat) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.format = format
	l.rebuild()
}

// rebuild must be called with the write lock held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: replaceLevel,
	}

	format := l.format
	if format == domain.LogFormatAuto || format == "" {
		format = domain.LogFormatText
		if output.IsTerminal(l.output) {
			format = domain.LogFormatPretty
		}
	}

	var handler slog.Handler
	switch format {
	case domain.LogFormatJSON:
		handler = slog.NewJSONHandler(l.output, opts)
	case domain.LogFormatText:
		handler = slog.NewTextHandler(l.output, opts)
	default:
		handler = NewPrettyHandler(l.output, opts)
	}

	l.pretty = format == domain.LogFormatPretty
	l.logger = slog.New(handler)
}

// replaceLevel names LevelFatal "FATAL" in structured output.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelFatal {
		a.Value = slog.StringValue("FATAL")
	}
	return a
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error with its cause chain.
func (l *Logger) Error(err error) {
	l.logError(slog.LevelError, err)
}

// Fatal logs an error at fatal level. It does not exit.
func (l *Logger) Fatal(err error) {
	l.logError(LevelFatal, err)
}

func (l *Logger) logError(level slog.Level, err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.pretty {
		entries := collectErrorEntries(err)
		l.logger.Log(context.Background(), level, entries[0].Message, "error", err)
		return
	}

	l.logger.Log(context.Background(), level, formatErrorEntries(collectErrorEntries(err)))
}
