// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"time"

	"github.com/matt-FFFFFF/groupby/internal/progress"
)

func reportQueued(reporter progress.Reporter, key string, items int) {
	reporter.Report(progress.Event{
		Group:     key,
		Type:      progress.EventQueued,
		Message:   "Waiting for a worker",
		Timestamp: time.Now(),
		Data:      progress.EventData{Items: items},
	})
}

func reportStarted(reporter progress.Reporter, key string) {
	reporter.Report(progress.Event{
		Group:     key,
		Type:      progress.EventStarted,
		Message:   fmt.Sprintf("Starting command for %q", key),
		Timestamp: time.Now(),
	})
}

func reportOutput(reporter progress.Reporter, key, line string) {
	reporter.Report(progress.Event{
		Group:     key,
		Type:      progress.EventOutput,
		Message:   "Command output",
		Timestamp: time.Now(),
		Data:      progress.EventData{OutputLine: line},
	})
}

func reportCompleted(reporter progress.Reporter, key string, exitCode, size int) {
	reporter.Report(progress.Event{
		Group:     key,
		Type:      progress.EventCompleted,
		Message:   "Command completed",
		Timestamp: time.Now(),
		Data:      progress.EventData{ExitCode: exitCode, Bytes: size},
	})
}

func reportFailed(reporter progress.Reporter, key string, err error) {
	reporter.Report(progress.Event{
		Group:     key,
		Type:      progress.EventFailed,
		Message:   "Command failed",
		Timestamp: time.Now(),
		Data:      progress.EventData{Error: err},
	})
}

func reportSkipped(reporter progress.Reporter, key string) {
	reporter.Report(progress.Event{
		Group:     key,
		Type:      progress.EventSkipped,
		Message:   "Not started, run stopped",
		Timestamp: time.Now(),
	})
}
