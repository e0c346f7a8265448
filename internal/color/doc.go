// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps text in ANSI escape codes when the destination can show them.
//
// Colour is decided per stream: stdout carries the grouped data and stderr carries logs
// and progress, and either may be redirected independently. NO_COLOR disables colour
// everywhere, FORCE_COLOR enables it even when the stream is not a terminal.
package color
