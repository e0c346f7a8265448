// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/teewriter"
)

var (
	// ErrBufferOverflow is returned when a command prints more than ShellCommandOptions.MaxOutput.
	ErrBufferOverflow = errors.New("output exceeds max size")
	// ErrSpawn is returned when the shell could not be started.
	ErrSpawn = errors.New("could not start command")
	// ErrWriteStdin is returned when feeding a command fails.
	ErrWriteStdin = errors.New("could not write to command stdin")
	// ErrWait is returned when waiting for a command fails for a reason other than its exit status.
	ErrWait = errors.New("could not wait for command")
	// ErrStdinTaken is returned when a handle's stdin is requested twice.
	ErrStdinTaken = errors.New("command stdin already taken")
	// ErrHandleConsumed is returned when WaitWithOutput is called twice.
	ErrHandleConsumed = errors.New("command handle already consumed")
)

// Handle is a running command with a piped stdin and captured stdout.
// A Handle is owned by a single goroutine.
type Handle struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *teewriter.LastLineWriter
	sep        []byte
	maxOutput  int
	logger     *slog.Logger
	stdinTaken bool
	consumed   bool
	exitCode   int
}

// Spawn starts opts.Shell with opts.ShellArgs for the group key.
// The command is not bound to ctx: once started it runs until it exits.
// Every complete line it prints is reported as a progress.EventOutput.
func Spawn(ctx context.Context, opts *ShellCommandOptions, key string) (*Handle, error) {
	logger := ctxlog.Logger(ctx).With("group", key)

	cmd := exec.Command(opts.Shell, opts.ShellArgs...) //nolint:gosec,noctx
	cmd.Stderr = opts.stderr()

	reporter := opts.progress()
	stdout := teewriter.New(
		teewriter.WithLimit(opts.MaxOutput),
		teewriter.WithLineCallback(func(line string) {
			reportOutput(reporter, key, line)
		}),
	)
	cmd.Stdout = stdout

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Join(ErrSpawn, err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close() //nolint:errcheck,gosec

		return nil, errors.Join(ErrSpawn, err)
	}

	logger.Debug("command started", "shell", opts.Shell, "args", opts.ShellArgs, "pid", cmd.Process.Pid)

	return &Handle{
		cmd:       cmd,
		stdin:     stdin,
		stdout:    stdout,
		sep:       opts.Separator,
		maxOutput: opts.MaxOutput,
		logger:    logger,
	}, nil
}

// Stdin returns the writer feeding the command. It can only be taken once.
func (h *Handle) Stdin() (*RecordWriter, error) {
	if h.stdinTaken {
		return nil, ErrStdinTaken
	}

	h.stdinTaken = true

	return NewRecordWriter(h.stdin, h.sep), nil
}

// WaitWithOutput closes the command's stdin, waits for it to exit and returns everything
// it printed. A non-zero exit status is not an error.
func (h *Handle) WaitWithOutput() ([]byte, error) {
	if h.consumed {
		return nil, ErrHandleConsumed
	}

	h.consumed = true

	if err := h.stdin.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		h.cmd.Wait() //nolint:errcheck,gosec

		return nil, errors.Join(ErrWriteStdin, err)
	}

	err := h.cmd.Wait()

	h.exitCode = -1
	if h.cmd.ProcessState != nil {
		h.exitCode = h.cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		h.logger.Debug("command exited with non-zero status", "exitCode", h.exitCode)
	} else if err != nil {
		return nil, errors.Join(ErrWait, err)
	}

	if h.stdout.Overflowed() {
		return nil, fmt.Errorf("%w of %d bytes", ErrBufferOverflow, h.maxOutput)
	}

	h.logger.Debug("command finished", "exitCode", h.exitCode, "bytes", h.stdout.Len())

	return h.stdout.Bytes(), nil
}

// ExitCode returns the exit code of a consumed handle, or -1 if the command was killed by a signal.
func (h *Handle) ExitCode() int {
	return h.exitCode
}
