// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for groupby.
package cmd

import (
	"os"

	"github.com/urfave/cli/v3"
)

const (
	whitespaceFlag     = "whitespace"
	nullFlag           = "null"
	splitFlag          = "split"
	firstCharsFlag     = "first-chars"
	lastCharsFlag      = "last-chars"
	regexFlag          = "regex"
	captureGroupFlag   = "capture-group"
	extensionFlag      = "extension"
	counterFlag        = "counter"
	print0Flag         = "print0"
	printSpaceFlag     = "printspace"
	noHeadersFlag      = "no-headers"
	onlyGroupNamesFlag = "only-group-names"
	statsFlag          = "stats"
	runCommandFlag     = "run-command"
	sequentialFlag     = "sequential"
	parallelismFlag    = "parallelism"
	progressFlag       = "progress"
	maxOutputFlag      = "max-output"
	configFlag         = "config"
	logLevelFlag       = "log-level"
	logFormatFlag      = "log-format"

	logFormatPretty = "pretty"
	logFormatJSON   = "json"
)

const (
	categoryInput   = "Input"
	categoryGrouper = "Grouping"
	categoryOutput  = "Output"
	categoryCommand = "Command"
	categoryMisc    = "Miscellaneous"
)

// RootCmd is the root command for the CLI.
var RootCmd = NewRootCmd()

// NewRootCmd returns a new, unrun root command.
func NewRootCmd() *cli.Command {
	return &cli.Command{
		Name:      "groupby",
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Usage:     "group input tokens by a key and print or process each group",
		UsageText: "groupby [options] [FILE...]",
		Description: `groupby reads tokens from the named files, or standard input, and puts each token in a group.
Exactly one grouper option chooses the key of each group.

Without --run-command the groups are printed, each under a header naming its key.
With --run-command the command is started once per group through $SHELL and fed the
group's values on standard input, separated by the output separator.
The output of every command is then printed under its group's header.

Defaults may be read from a YAML or HCL file given with --config.
Its location uses Hashicorp's go-getter syntax, see https://github.com/hashicorp/go-getter.
Command line options always take precedence over the file.`,
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Flags:                 flags(),
		Action:                actionFunc,
		EnableShellCompletion: true,
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     whitespaceFlag,
			Aliases:  []string{"w"},
			Usage:    "Split input on runs of whitespace",
			Category: categoryInput,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     nullFlag,
			Aliases:  []string{"0"},
			Usage:    "Split input on null characters",
			Category: categoryInput,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     splitFlag,
			Usage:    "Split input on `DELIM`",
			Category: categoryInput,
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:     firstCharsFlag,
			Aliases:  []string{"f"},
			Usage:    "Group by the first `N` characters of each token",
			Category: categoryGrouper,
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:     lastCharsFlag,
			Aliases:  []string{"l"},
			Usage:    "Group by the last `N` characters of each token",
			Category: categoryGrouper,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     regexFlag,
			Aliases:  []string{"r"},
			Usage:    "Group by the first match of `PATTERN`",
			Category: categoryGrouper,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name: captureGroupFlag,
			Usage: "Group by the capture group `G` of --regex, a number or a name. " +
				"Defaults to the first group, or the whole match when there is none",
			Category: categoryGrouper,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     extensionFlag,
			Usage:    "Group by file extension",
			Category: categoryGrouper,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     counterFlag,
			Usage:    "Put every token in its own group, keyed by its position",
			Category: categoryGrouper,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     print0Flag,
			Usage:    "Separate output records with null characters",
			Category: categoryOutput,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     printSpaceFlag,
			Usage:    "Separate output records with spaces",
			Category: categoryOutput,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     noHeadersFlag,
			Usage:    "Do not print group headers",
			Category: categoryOutput,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     onlyGroupNamesFlag,
			Usage:    "Print only group keys. With --run-command, feed each command its key instead of its values",
			Category: categoryOutput,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     statsFlag,
			Usage:    "Print item counts and group size statistics",
			Category: categoryOutput,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     runCommandFlag,
			Aliases:  []string{"c"},
			Usage:    "Run `CMD` with $SHELL once per group, feeding it the group on standard input",
			Category: categoryCommand,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     sequentialFlag,
			Usage:    "Run group commands one at a time, in key order",
			Category: categoryCommand,
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:    parallelismFlag,
			Aliases: []string{"p"},
			Usage: "Set the maximum number of concurrent commands to run. " +
				"Defaults to the number of CPU cores available",
			Category: categoryCommand,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     progressFlag,
			Usage:    "Show the progress of group commands on stderr when it is a terminal",
			Category: categoryCommand,
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:     maxOutputFlag,
			Usage:    "Fail when a command prints more than `BYTES`. 0 means no limit",
			Category: categoryCommand,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      configFlag,
			Usage:     "Read defaults from the YAML or HCL file at `URL`",
			Category:  categoryMisc,
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     logLevelFlag,
			Usage:    "Set the log level: debug, info, warn or error. Overrides $GROUPBY_LOG_LEVEL",
			Category: categoryMisc,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     logFormatFlag,
			Usage:    "Set the log format: pretty or json",
			Value:    logFormatPretty,
			Category: categoryMisc,
			OnlyOnce: true,
		},
	}
}
