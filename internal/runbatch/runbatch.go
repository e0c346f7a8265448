// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/matt-FFFFFF/groupby/internal/collection"
	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// CaptureOutput runs the command for one group and returns what it printed.
// The command is fed the group key when opts.OnlyGroupNames is set, otherwise every value.
func CaptureOutput(ctx context.Context, opts *ShellCommandOptions, key string, values []string) ([]byte, error) {
	reporter := opts.progress()

	h, err := Spawn(ctx, opts, key)
	if err != nil {
		reportFailed(reporter, key, err)
		return nil, err
	}

	reportStarted(reporter, key)

	w, err := h.Stdin()
	if err == nil {
		if opts.OnlyGroupNames {
			err = w.Write(key)
		} else {
			err = w.WriteAll(values)
		}
	}

	if err != nil {
		err = errors.Join(ErrWriteStdin, err)
		h.WaitWithOutput() //nolint:errcheck,gosec
		reportFailed(reporter, key, err)

		return nil, err
	}

	out, err := h.WaitWithOutput()
	if err != nil {
		reportFailed(reporter, key, err)
		return nil, err
	}

	reportCompleted(reporter, key, h.ExitCode(), len(out))

	return out, nil
}

// RunSequential runs the command for every group, one at a time in collection order,
// and reports each output to results. It stops at the first error.
// Cancelling ctx stops groups that have not started yet.
func RunSequential[C collection.Collection[string, string], R Reporter](
	ctx context.Context, groups C, opts *ShellCommandOptions, results R,
) (R, error) {
	reporter := opts.progress()

	var stopErr error

	for key, values := range groups.All() {
		if stopErr == nil {
			stopErr = ctx.Err()
		}

		if stopErr != nil {
			reportSkipped(reporter, key)
			continue
		}

		out, err := CaptureOutput(ctx, opts, key, values)
		if err != nil {
			stopErr = fmt.Errorf("group %q: %w", key, err)
			continue
		}

		results.Report(key, out)
	}

	return results, stopErr
}

// RunParallel runs the command for every group in a pool of at most limit workers and
// reports each output to results. limit <= 0 means one worker per CPU.
// The first error stops groups that have not started yet and is returned once the running
// commands have finished. Cancelling ctx does the same.
func RunParallel[C collection.Collection[string, string], R Reporter](
	ctx context.Context, groups C, opts *ShellCommandOptions, results R, limit int,
) (R, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	ctxlog.Debug(ctx, "running groups in parallel", "groups", groups.Len(), "workers", limit)

	reporter := opts.progress()
	locked := NewLocked(results)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for key, values := range groups.All() {
		if gctx.Err() != nil {
			reportSkipped(reporter, key)
			continue
		}

		reportQueued(reporter, key, len(values))

		g.Go(func() error {
			if gctx.Err() != nil {
				reportSkipped(reporter, key)
				return nil
			}

			out, err := CaptureOutput(gctx, opts, key, values)
			if err != nil {
				return fmt.Errorf("group %q: %w", key, err)
			}

			locked.Report(key, out)

			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	return locked.Unwrap(), err
}

// Run runs every group with RunParallel, or RunSequential when parallel is false,
// and collects the outputs into Results.
func Run[C collection.Collection[string, string]](
	ctx context.Context, groups C, opts *ShellCommandOptions, parallel bool, limit int,
) (Results, error) {
	if parallel {
		return RunParallel(ctx, groups, opts, NewResults(), limit)
	}

	return RunSequential(ctx, groups, opts, NewResults())
}
