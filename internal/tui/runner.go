// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/progress"
)

// eventBuffer is sized so that a burst of output lines does not push out
// the completion events that follow it.
const eventBuffer = 4096

// ErrTUI is returned when the display itself fails.
var ErrTUI = errors.New("progress display error")

// Runner drives a run while showing its progress.
type Runner struct {
	model   *Model
	program *tea.Program
}

// NewRunner creates a runner for the given groups, drawn on stderr.
// Extra program options are appended to the defaults.
func NewRunner(groups []string, cancel context.CancelFunc, opts ...tea.ProgramOption) *Runner {
	model := NewModel(groups, cancel)

	// Signals are left to the caller so that a repeated interrupt can still force an exit.
	defaults := []tea.ProgramOption{
		tea.WithOutput(os.Stderr),
		tea.WithoutSignalHandler(),
	}

	return &Runner{
		model:   model,
		program: tea.NewProgram(model, append(defaults, opts...)...),
	}
}

// Model returns the model the runner displays.
func (r *Runner) Model() *Model {
	return r.model
}

// Run calls fn with a reporter that feeds the display, then waits for the display to close.
// The error returned by fn takes precedence over a display error.
func (r *Runner) Run(ctx context.Context, fn func(progress.Reporter) error) error {
	reporter := progress.NewChannelReporter(ctx, eventBuffer)
	reporter.Listen(&programListener{program: r.program})

	programDone := make(chan error, 1)

	go func() {
		_, err := r.program.Run()
		programDone <- err
	}()

	err := fn(reporter)

	reporter.Close()
	r.program.Send(DoneMsg{Err: err})

	if perr := <-programDone; perr != nil {
		ctxlog.Debug(ctx, "progress display stopped", "error", perr)

		if err == nil && !errors.Is(perr, tea.ErrProgramKilled) {
			err = errors.Join(ErrTUI, perr)
		}
	}

	return err
}

// programListener forwards progress events to the tea program.
type programListener struct {
	program *tea.Program
}

// OnEvent implements progress.Listener.
func (l *programListener) OnEvent(event progress.Event) {
	l.program.Send(ProgressEventMsg{Event: event})
}
