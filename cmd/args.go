// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

const (
	endOfOptions = "--"
	stdinOperand = "-"
	nullShort    = "-0"
)

// Run runs c with argv after NormalizeArgs.
func Run(ctx context.Context, c *cli.Command, argv []string) error {
	return c.Run(ctx, NormalizeArgs(argv)) //nolint:wrapcheck
}

// NormalizeArgs moves every option ahead of the file operands and puts "--" between them,
// so that "-" and files given between options all reach the command as operands.
// "-0" is rewritten to its long form because the cli parser reads it as an operand.
// argv[0] is the program name. Everything after a "--" in argv is an operand.
func NormalizeArgs(argv []string) []string {
	if len(argv) == 0 || isCompletionRequest(argv) {
		return argv
	}

	valued := valueFlagNames()
	opts := []string{argv[0]}

	var files []string

	rest := argv[1:]

loop:
	for i := 0; i < len(rest); i++ {
		arg := rest[i]

		switch {
		case arg == endOfOptions:
			files = append(files, rest[i+1:]...)
			break loop
		case arg == nullShort:
			opts = append(opts, "--"+nullFlag)
		case arg == stdinOperand || !strings.HasPrefix(arg, "-"):
			files = append(files, arg)
		default:
			opts = append(opts, arg)

			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && valued[name] && i+1 < len(rest) {
				i++
				opts = append(opts, rest[i])
			}
		}
	}

	return append(append(opts, endOfOptions), files...)
}

// isCompletionRequest reports whether argv asks for shell completions, which the cli
// only recognises as the last argument.
func isCompletionRequest(argv []string) bool {
	last := strings.TrimLeft(argv[len(argv)-1], "-")

	return slices.Contains(cli.GenerateShellCompletionFlag.Names(), last)
}

// valueFlagNames returns every name and alias of the flags that take a value.
func valueFlagNames() map[string]bool {
	names := make(map[string]bool)

	for _, f := range flags() {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}

		for _, n := range f.Names() {
			names[n] = true
		}
	}

	return names
}
