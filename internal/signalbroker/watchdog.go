// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
)

// ExitCodeInterrupted is the status used when a repeated signal forces termination.
const ExitCodeInterrupted = 130

// exit is replaced in tests.
var exit = os.Exit

// Watch monitors the signal channel until it is closed or ctx is done.
// The first signal cancels the run; running children are left to finish.
// A second signal of the same type terminates the process with ExitCodeInterrupted.
// ctx must outlive the context that cancel belongs to, or the second signal is never seen.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Error(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
				exit(ExitCodeInterrupted)

				return
			}

			ctxlog.Warn(ctx, "watchdog",
				"detail", "received signal, finishing running commands; send again to terminate",
				"signal", sig.String())

			seen[sig] = struct{}{}

			cancel()
		}
	}
}
