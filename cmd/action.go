// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/matt-FFFFFF/groupby/internal/collection"
	"github.com/matt-FFFFFF/groupby/internal/color"
	"github.com/matt-FFFFFF/groupby/internal/config"
	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/grouper"
	"github.com/matt-FFFFFF/groupby/internal/input"
	"github.com/matt-FFFFFF/groupby/internal/output"
	"github.com/matt-FFFFFF/groupby/internal/progress"
	"github.com/matt-FFFFFF/groupby/internal/runbatch"
	"github.com/matt-FFFFFF/groupby/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	cliExitCode = 1
	eventBuffer = 1024
)

type groupMap = collection.SortedMap[string, string]

// Package vars replaced in tests.
var (
	lookupEnv        = os.LookupEnv
	stderrIsTerminal = func() bool { return color.IsTerminal(os.Stderr) }
	stdoutColour     = color.Enabled
)

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	ctx, err := configureLogging(ctx, cmd)
	if err != nil {
		return exit(ctx, "invalid logging options", err)
	}

	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running groupby")

	opts, err := buildOptions(ctx, cmd)
	if err != nil {
		return exit(ctx, "invalid options", err)
	}

	// The shell is resolved before any input is read so a bad environment fails fast.
	var shell string

	if opts.RunCommand != "" {
		if shell, err = resolveShell(opts); err != nil {
			return exit(ctx, "cannot run command", err)
		}
	}

	groups, err := readGroups(ctx, cmd.Args().Slice(), opts)
	if err != nil {
		return exit(ctx, "cannot group input", err)
	}

	opts.Output.Colour = stdoutColour()
	out := bufio.NewWriter(cmd.Writer)

	if opts.RunCommand == "" {
		err = output.WriteGroups(out, groups, opts.Output)
	} else {
		var results runbatch.Results

		results, err = runCommand(ctx, cmd, groups, opts, shell)
		if err != nil {
			return exit(ctx, "command failed", err)
		}

		err = output.WriteResults(out, groups, results, output.CommandResultOptions(opts.Output))
	}

	if err == nil {
		err = out.Flush()
	}

	if err != nil {
		return exit(ctx, "cannot write output", err)
	}

	return nil
}

// configureLogging applies the logging flags and tags the logger with a run ID.
func configureLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet(logLevelFlag) {
		level, ok := ctxlog.ParseLevel(cmd.String(logLevelFlag))
		if !ok {
			return ctx, fmt.Errorf("unknown log level %q", cmd.String(logLevelFlag))
		}

		ctxlog.LevelVar.Set(level)
	}

	switch cmd.String(logFormatFlag) {
	case logFormatPretty:
	case logFormatJSON:
		ctx = ctxlog.New(ctx, ctxlog.JSONLogger)
	default:
		return ctx, fmt.Errorf("unknown log format %q", cmd.String(logFormatFlag))
	}

	return ctxlog.WithRunID(ctx), nil
}

func resolveShell(opts *config.Options) (string, error) {
	if opts.Shell != "" {
		return opts.Shell, nil
	}

	return config.CurrentShell(lookupEnv) //nolint:wrapcheck
}

// readGroups groups every token of the named files, or stdin, by key.
func readGroups(ctx context.Context, files []string, opts *config.Options) (*groupMap, error) {
	runner, err := grouper.NewRunner(collection.NewSortedMap[string, string](), opts.Grouping)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	r, err := input.Open(files)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	defer r.Close() //nolint:errcheck

	n, err := input.BuildGroups(ctx, r, opts.Input, runner)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	groups := runner.Groups()
	ctxlog.Info(ctx, "input grouped", "tokens", n, "groups", groups.Len(), "grouper", opts.Grouping.Kind.String())

	return groups, nil
}

// runCommand runs the command once per group, showing progress on stderr when asked to.
func runCommand(
	ctx context.Context, cmd *cli.Command, groups *groupMap, opts *config.Options, shell string,
) (runbatch.Results, error) {
	sopts := &runbatch.ShellCommandOptions{
		Shell:          shell,
		ShellArgs:      config.ShellArgs(opts.RunCommand),
		Separator:      opts.Output.Separator.Bytes(),
		OnlyGroupNames: opts.Output.OnlyGroupNames,
		Stderr:         &syncWriter{w: cmd.ErrWriter},
		MaxOutput:      cmd.Int(maxOutputFlag),
	}

	run := func(ctx context.Context, rep progress.Reporter) (runbatch.Results, error) {
		sopts.Progress = rep
		return runbatch.Run(ctx, groups, sopts, !opts.Sequential, opts.Parallelism) //nolint:wrapcheck
	}

	if !cmd.Bool(progressFlag) || !stderrIsTerminal() {
		rep := progress.NewChannelReporter(ctx, eventBuffer)
		rep.Listen(progress.NewLogListener(ctx))

		defer rep.Close()

		return run(ctx, rep)
	}

	// Anything written to stderr while the display is up is held back until it closes.
	held := new(bytes.Buffer)
	sopts.Stderr = &syncWriter{w: held}

	runCtx, cancel := context.WithCancel(ctxlog.NewForTUI(ctx, sopts.Stderr))
	defer cancel()

	var results runbatch.Results

	runner := tui.NewRunner(collection.Keys[string, string](groups), cancel)
	err := runner.Run(runCtx, func(rep progress.Reporter) error {
		var err error

		results, err = run(runCtx, rep)

		return err
	})

	held.WriteTo(cmd.ErrWriter) //nolint:errcheck

	return results, err
}

// exit logs err and turns it into an error that makes the CLI exit with a failure status.
func exit(ctx context.Context, msg string, err error) error {
	ctxlog.Debug(ctx, msg, "error", err)
	return cli.Exit(fmt.Sprintf("%s: %v", msg, err), cliExitCode)
}

// syncWriter serialises writes from the stderr of concurrently running commands.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p) //nolint:wrapcheck
}
