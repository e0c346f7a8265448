// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/groupby/internal/color"
)

// LogLevelEnvVar names the environment variable that sets the initial log level.
// Valid values are "DEBUG", "INFO", "WARN" and "ERROR"; anything else means WARN.
const LogLevelEnvVar = "GROUPBY_LOG_LEVEL"

// RunIDKey is the attribute key carrying the identifier of one invocation.
const RunIDKey = "run_id"

type (
	loggerKey struct{}
	runIDKey  struct{}
)

// LevelVar is shared by every logger created by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is a pretty text logger on stderr that is used if no logger is provided.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithColour(color.StderrEnabled()),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger writes one JSON object per record to stderr.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New creates a new context with the given logger.
// If logger is nil, it uses the default logger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewForTUI returns a context whose logger writes plain text to w, so that log lines
// do not tear the terminal display. The caller flushes w once the display is gone.
func NewForTUI(ctx context.Context, w io.Writer) context.Context {
	logger := slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar},
		WithDestinationWriter(w),
	))

	if id := RunID(ctx); id != "" {
		logger = logger.With(RunIDKey, id)
	}

	return New(ctx, logger)
}

// WithRunID tags the context logger with a fresh run identifier and returns the new context.
func WithRunID(ctx context.Context) context.Context {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, runIDKey{}, id)

	return New(ctx, Logger(ctx).With(RunIDKey, id))
}

// RunID returns the run identifier stored by WithRunID, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

// ParseLevel converts a level name, in any case, to a slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

func logLevelFromEnv() slog.Level {
	level, _ := ParseLevel(os.Getenv(LogLevelEnvVar))
	return level
}
