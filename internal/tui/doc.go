// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui shows the commands of a groupby run while they execute.
// Each group is listed with its status, elapsed time and the last line its command printed,
// under an overall progress bar.
//
// The display is drawn on stderr so that stdout only ever carries the final report.
// It closes by itself once every group has finished.
package tui
