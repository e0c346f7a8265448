// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output writes the final report: each group under a header, or the output of the
// command run for it, optionally followed by statistics about the groups.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/matt-FFFFFF/groupby/internal/collection"
	"github.com/matt-FFFFFF/groupby/internal/color"
	"github.com/matt-FFFFFF/groupby/internal/input"
	"github.com/matt-FFFFFF/groupby/internal/runbatch"
)

// Options controls how the final report is written.
type Options struct {
	Separator      input.Separator // Written after every record.
	OnlyGroupNames bool            // Write group keys only.
	NoHeaders      bool            // Omit the header before each group.
	Stats          bool            // Add item counts and a statistics block.
	Colour         bool            // Colour the headers.
}

// CommandResultOptions returns the options used to write command outputs.
// The separator and OnlyGroupNames only describe what the commands are fed, so they are reset.
func CommandResultOptions(base Options) Options {
	return Options{
		Separator: input.LineSeparator,
		NoHeaders: base.NoHeaders,
		Stats:     base.Stats,
		Colour:    base.Colour,
	}
}

// ItemCount describes n items in English.
func ItemCount(n int) string {
	if n == 1 {
		return "1 item"
	}

	return strconv.Itoa(n) + " items"
}

// WriteGroups writes every group in collection order.
func WriteGroups[C collection.Collection[string, string]](w io.Writer, groups C, opts Options) error {
	rw := runbatch.NewRecordWriter(w, opts.Separator.Bytes())

	for key, values := range groups.All() {
		if opts.OnlyGroupNames {
			if err := rw.Write(groupName(key, len(values), opts)); err != nil {
				return wrap(err)
			}

			continue
		}

		if !opts.NoHeaders {
			if err := rw.Write(header(key, len(values), opts)); err != nil {
				return wrap(err)
			}
		}

		if err := rw.WriteAll(values); err != nil {
			return wrap(err)
		}
	}

	return writeStats(rw, groups, opts)
}

// WriteResults writes the command output of every group in collection order.
// opts should come from CommandResultOptions.
// With NoHeaders the outputs are written back to back with nothing between them.
func WriteResults[C collection.Collection[string, string]](
	w io.Writer, groups C, results runbatch.Results, opts Options,
) error {
	rw := runbatch.NewRecordWriter(w, opts.Separator.Bytes())

	for key, values := range groups.All() {
		out, _ := results.Get(key)

		if opts.NoHeaders {
			if _, err := w.Write(out); err != nil {
				return wrap(err)
			}

			continue
		}

		if err := rw.Write(header(key, len(values), opts)); err != nil {
			return wrap(err)
		}

		if err := rw.Write(string(out)); err != nil {
			return wrap(err)
		}
	}

	return writeStats(rw, groups, opts)
}

func header(key string, n int, opts Options) string {
	h := key + ":"
	if opts.Stats {
		h += " (" + ItemCount(n) + ")"
	}

	return color.ColorizeIf(opts.Colour, h, color.Bold, color.FgCyan)
}

func groupName(key string, n int, opts Options) string {
	if opts.Stats {
		return key + " (" + ItemCount(n) + ")"
	}

	return key
}

func writeStats[C collection.Collection[string, string]](rw *runbatch.RecordWriter, groups C, opts Options) error {
	if !opts.Stats {
		return nil
	}

	if err := rw.WriteAll([]string{"", Statistics(groups).String()}); err != nil {
		return wrap(err)
	}

	return nil
}

func wrap(err error) error {
	return fmt.Errorf("writing output: %w", err)
}
