// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import "errors"

// ShellEnvVar names the environment variable holding the user's shell.
const ShellEnvVar = "SHELL"

// ErrShellNotSet is returned when a command is requested but no shell is known.
var ErrShellNotSet = errors.New("environment variable " + ShellEnvVar + " is not set")

// CurrentShell returns the user's shell, e.g. /usr/bin/zsh, using lookup to read the environment.
// Pass os.LookupEnv outside of tests.
func CurrentShell(lookup func(string) (string, bool)) (string, error) {
	shell, ok := lookup(ShellEnvVar)
	if !ok || shell == "" {
		return "", ErrShellNotSet
	}

	return shell, nil
}

// ShellArgs returns the arguments that make a POSIX shell run cmd.
func ShellArgs(cmd string) []string {
	return []string{"-c", cmd}
}
