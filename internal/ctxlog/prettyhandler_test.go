// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBrokenWriter = errors.New("broken writer")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errBrokenWriter }

func TestNewPrettyHandler_Defaults(t *testing.T) {
	h := NewPrettyHandler(nil)

	require.NotNil(t, h)
	assert.False(t, h.colour)
	assert.False(t, h.outputEmptyAttrs)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf), WithOutputEmptyAttrs())

	withAttrs, ok := h.WithAttrs([]slog.Attr{slog.String("group", "dogs")}).(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, h.m, withAttrs.m)
	assert.True(t, withAttrs.outputEmptyAttrs, "options survive WithAttrs")

	withGroup, ok := withAttrs.WithGroup("child").(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, h.b, withGroup.b)

	logger := slog.New(withGroup)
	logger.Info("spawned", "pid", 42)

	out := buf.String()
	assert.Contains(t, out, `"group": "dogs"`)
	assert.Contains(t, out, `"child"`)
	assert.Contains(t, out, `"pid": 42`)
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []any
		options []Option
		want    []string
		notWant []string
	}{
		{
			name:    "info without attributes",
			level:   slog.LevelInfo,
			message: "grouping input",
			want:    []string{"INFO:", "grouping input"},
			notWant: []string{"{"},
		},
		{
			name:    "debug with attributes",
			level:   slog.LevelDebug,
			message: "group dispatched",
			attrs:   []any{"group", "txt", "items", 3},
			want:    []string{"DEBUG:", "group dispatched", `"group": "txt"`, `"items": 3`},
		},
		{
			name:    "warning",
			level:   slog.LevelWarn,
			message: "careful",
			want:    []string{"WARN:", "careful"},
		},
		{
			name:    "error",
			level:   slog.LevelError,
			message: "command failed",
			want:    []string{"ERROR:", "command failed"},
		},
		{
			name:    "empty attributes printed on request",
			level:   slog.LevelInfo,
			message: "done",
			options: []Option{WithOutputEmptyAttrs()},
			want:    []string{"INFO:", "done", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tt.options...)
			h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			r := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			r.Add(tt.attrs...)

			require.NoError(t, h.Handle(context.Background(), r))

			out := buf.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}

			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}

			assert.True(t, strings.HasSuffix(out, "\n"))
			assert.NotContains(t, out, "\033[", "colour is off unless requested")
		})
	}
}

func TestPrettyHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf), WithColour(true))

	r := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "\033[")
}

func TestPrettyHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	replace := func(_ []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.TimeKey:
			return slog.Attr{}
		case "secret":
			return slog.String("secret", "[REDACTED]")
		}

		return a
	}

	h := NewPrettyHandler(&slog.HandlerOptions{ReplaceAttr: replace}, WithDestinationWriter(&buf))

	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelInfo, "shell", 0)
	r.Add("secret", "hunter2", "public", "data")

	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "public")
	assert.NotContains(t, out, "[03:04:05.000]")
	assert.True(t, strings.HasPrefix(out, "INFO:"))
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(brokenWriter{}))

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "lost", 0)
	err := h.Handle(context.Background(), r)

	require.ErrorIs(t, err, ErrIoWrite)
	require.ErrorIs(t, err, errBrokenWriter)
}

func TestPrettyHandler_DefaultTimeFormat(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf))

	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC), slog.LevelInfo, "tick", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	assert.True(t, strings.HasPrefix(buf.String(), "[03:04:05.006] INFO: tick"))
}
