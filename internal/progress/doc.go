// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries lifecycle events for the per-group commands while they run.
// Events are advisory: the final results never depend on whether anyone is listening.
package progress
