// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"runtime"
	"sync"
	"testing"

	"github.com/matt-FFFFFF/groupby/internal/progress"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func requireShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func shellOptions(command string, sep string, onlyGroupNames bool) *ShellCommandOptions {
	return &ShellCommandOptions{
		Shell:          "/bin/sh",
		ShellArgs:      []string{"-c", command},
		Separator:      []byte(sep),
		OnlyGroupNames: onlyGroupNames,
	}
}

// recordingReporter keeps every progress event it receives.
type recordingReporter struct {
	mu     sync.Mutex
	events []progress.Event
}

func (r *recordingReporter) Report(e progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recordingReporter) Close() {}

func (r *recordingReporter) types(group string) []progress.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []progress.EventType

	for _, e := range r.events {
		if e.Group == group {
			out = append(out, e.Type)
		}
	}

	return out
}
