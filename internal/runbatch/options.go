// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"io"
	"os"

	"github.com/matt-FFFFFF/groupby/internal/progress"
)

// ShellCommandOptions describes how the command for each group is started and fed.
// It is read concurrently by every worker and must not be changed during a run.
type ShellCommandOptions struct {
	Shell          string            // Path of the shell, usually from $SHELL.
	ShellArgs      []string          // Arguments to the shell, e.g. ["-c", "wc -l"].
	Separator      []byte            // Written after every item fed to the command.
	OnlyGroupNames bool              // Feed the group key instead of the group's values.
	Stderr         io.Writer         // Where the commands' stderr goes. Defaults to os.Stderr.
	Progress       progress.Reporter // Receives lifecycle events. Defaults to a no-op.
	MaxOutput      int               // Cap on each command's captured stdout in bytes, 0 means no cap.
}

func (o *ShellCommandOptions) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}

	return o.Stderr
}

func (o *ShellCommandOptions) progress() progress.Reporter {
	if o.Progress == nil {
		return progress.NewNullReporter()
	}

	return o.Progress
}
