// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the groupby command-line application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/groupby/cmd"
	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/signalbroker"
)

func main() {
	baseCtx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	sigCh := signalbroker.New(baseCtx)
	defer signalbroker.Stop(sigCh)

	// The watchdog needs a context that survives the first cancel to see a repeated signal.
	go signalbroker.Watch(baseCtx, sigCh, cancel)

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", Version, Commit)

	err := cmd.Run(ctx, cmd.RootCmd, os.Args) // Exit errors are handled by the cli framework

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(signalbroker.ExitCodeInterrupted)
	}

	if err != nil {
		ctxlog.Debug(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}
}
