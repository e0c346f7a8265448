// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

// Code represents an ANSI control code for text formatting.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	reset      = "\033[0m"
	prefix     = "\033["
	suffix     = "m"
)

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var (
	stdoutEnabled bool
	stderrEnabled bool
)

func init() {
	stdoutEnabled = isColorEnabled(os.Stdout)
	stderrEnabled = isColorEnabled(os.Stderr)
}

// Colorize returns str wrapped in the given codes if stdout supports colour.
func Colorize(str string, colorCodes ...Code) string {
	return ColorizeIf(stdoutEnabled, str, colorCodes...)
}

// ColorizeStderr returns str wrapped in the given codes if stderr supports colour.
func ColorizeStderr(str string, colorCodes ...Code) string {
	return ColorizeIf(stderrEnabled, str, colorCodes...)
}

// ColorizeIf returns str wrapped in the given codes followed by a reset, or str unchanged
// when enabled is false or no codes are given.
func ColorizeIf(enabled bool, str string, colorCodes ...Code) string {
	if !enabled || len(colorCodes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range colorCodes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// Enabled reports whether colour output is enabled for stdout.
// It is initialized in package init().
func Enabled() bool {
	return stdoutEnabled
}

// StderrEnabled reports whether colour output is enabled for stderr.
// It is initialized in package init().
func StderrEnabled() bool {
	return stderrEnabled
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func isColorCapable() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	return os.Getenv(ForceColor) != ""
}

func isColorEnabled(f *os.File) bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	return isColorCapable() || IsTerminal(f)
}
