// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/groupby/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(group string, typ progress.EventType, data progress.EventData) ProgressEventMsg {
	return ProgressEventMsg{Event: progress.Event{
		Group:     group,
		Type:      typ,
		Timestamp: time.Now(),
		Data:      data,
	}}
}

func TestGroupStatus_String(t *testing.T) {
	tests := []struct {
		status   GroupStatus
		expected string
	}{
		{StatusPending, "pending"},
		{StatusQueued, "queued"},
		{StatusRunning, "running"},
		{StatusSuccess, "success"},
		{StatusFailed, "failed"},
		{StatusSkipped, "skipped"},
		{GroupStatus(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.String())
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel([]string{"Birds", "Cats", "Dogs"}, nil)

	assert.Equal(t, []string{"Birds", "Cats", "Dogs"}, m.Groups())
	assert.Equal(t, 0, m.Finished())

	n, ok := m.Node("Cats")
	require.True(t, ok)
	assert.Equal(t, StatusPending, n.Status)

	_, ok = m.Node("Fish")
	assert.False(t, ok)
}

func TestModel_ProgressEvents(t *testing.T) {
	m := NewModel([]string{"Cats", "Dogs"}, nil)

	m.Update(event("Dogs", progress.EventQueued, progress.EventData{Items: 2}))
	m.Update(event("Dogs", progress.EventStarted, progress.EventData{}))
	m.Update(event("Dogs", progress.EventOutput, progress.EventData{OutputLine: "Lassy"}))

	n, _ := m.Node("Dogs")
	assert.Equal(t, StatusRunning, n.Status)
	assert.Equal(t, 2, n.Items)
	assert.Equal(t, "Lassy", n.LastOutput)
	assert.Contains(t, m.View(), "Lassy")

	m.Update(event("Dogs", progress.EventCompleted, progress.EventData{ExitCode: 0}))
	m.Update(event("Cats", progress.EventFailed, progress.EventData{Error: errors.New("no such shell")}))

	assert.Equal(t, 2, m.Finished())

	n, _ = m.Node("Cats")
	assert.Equal(t, StatusFailed, n.Status)
	assert.Equal(t, "no such shell", n.ErrorMsg)
	assert.Contains(t, m.View(), "Error: no such shell")
	assert.Contains(t, m.View(), "2/2 groups")
}

func TestModel_FinishedCountedOnce(t *testing.T) {
	m := NewModel([]string{"Dogs"}, nil)

	m.Update(event("Dogs", progress.EventCompleted, progress.EventData{}))
	m.Update(event("Dogs", progress.EventSkipped, progress.EventData{}))

	assert.Equal(t, 1, m.Finished())
}

func TestModel_UnknownGroupIsAdded(t *testing.T) {
	m := NewModel(nil, nil)

	m.Update(event("Fish", progress.EventSkipped, progress.EventData{}))

	assert.Equal(t, []string{"Fish"}, m.Groups())
	assert.Contains(t, m.View(), "Fish (skipped)")
}

func TestModel_NonZeroExit(t *testing.T) {
	m := NewModel([]string{"ecs440"}, nil)

	m.Update(event("ecs440", progress.EventStarted, progress.EventData{}))
	m.Update(event("ecs440", progress.EventCompleted, progress.EventData{ExitCode: 3}))

	assert.Contains(t, m.View(), "ecs440 (exit 3)")
}

func TestModel_CtrlC(t *testing.T) {
	var cancelled int

	m := NewModel([]string{"Dogs"}, func() { cancelled++ })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, cancelled)
	assert.Contains(t, m.View(), "Stopping")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, cancelled)
}

func TestModel_Done(t *testing.T) {
	m := NewModel([]string{"Dogs"}, nil)

	_, cmd := m.Update(DoneMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "All groups finished")

	m = NewModel([]string{"Dogs"}, nil)
	m.Update(DoneMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Stopped: boom")
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel([]string{"Dogs"}, nil)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 40-reservedLines, m.viewport.Height)
}

func TestGroupNode_Elapsed(t *testing.T) {
	now := time.Now()

	n := GroupNode{}
	assert.Zero(t, n.Elapsed(now))

	n.StartTime = now.Add(-time.Second)
	assert.Equal(t, time.Second, n.Elapsed(now))

	n.EndTime = now.Add(-500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, n.Elapsed(now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Empty(t, truncate("abcdef", -1))
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner([]string{"Cats", "Dogs"}, nil, tea.WithInput(nil), tea.WithOutput(io.Discard))

	err := r.Run(context.Background(), func(rep progress.Reporter) error {
		for _, g := range []string{"Cats", "Dogs"} {
			rep.Report(progress.Event{Group: g, Type: progress.EventStarted, Timestamp: time.Now()})
			rep.Report(progress.Event{Group: g, Type: progress.EventCompleted, Timestamp: time.Now()})
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, r.Model().Finished())
}

func TestRunner_RunReturnsWorkError(t *testing.T) {
	r := NewRunner([]string{"Dogs"}, nil, tea.WithInput(nil), tea.WithOutput(io.Discard))
	boom := errors.New("boom")

	err := r.Run(context.Background(), func(progress.Reporter) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
}
