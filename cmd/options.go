// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/groupby/internal/config"
	"github.com/matt-FFFFFF/groupby/internal/grouper"
	"github.com/matt-FFFFFF/groupby/internal/input"
	"github.com/urfave/cli/v3"
)

var (
	// ErrCaptureGroupWithoutRegex is returned when --capture-group is given without --regex.
	ErrCaptureGroupWithoutRegex = errors.New("--" + captureGroupFlag + " requires --" + regexFlag)
	// ErrInvalidParallelism is returned for a negative parallelism.
	ErrInvalidParallelism = errors.New("parallelism must not be negative")
)

// buildOptions resolves the options of a run: defaults from --config first, then flags.
func buildOptions(ctx context.Context, cmd *cli.Command) (*config.Options, error) {
	if err := validateFlags(cmd); err != nil {
		return nil, err
	}

	opts := &config.Options{}

	if url := cmd.String(configFlag); url != "" {
		d, err := config.Load(ctx, url)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if err := d.Apply(opts); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	if err := applyFlags(cmd, opts); err != nil {
		return nil, err
	}

	return opts, nil
}

func validateFlags(cmd *cli.Command) error {
	err := config.ValidateChoices(
		config.ChoiceSet{
			Name: "input separator",
			Choices: []config.Choice{
				{Flag: whitespaceFlag, Set: cmd.Bool(whitespaceFlag)},
				{Flag: nullFlag, Set: cmd.Bool(nullFlag)},
				{Flag: splitFlag, Set: cmd.IsSet(splitFlag)},
			},
		},
		config.ChoiceSet{
			Name:     "grouper",
			Required: true,
			Choices: []config.Choice{
				{Flag: firstCharsFlag, Set: cmd.IsSet(firstCharsFlag)},
				{Flag: lastCharsFlag, Set: cmd.IsSet(lastCharsFlag)},
				{Flag: regexFlag, Set: cmd.IsSet(regexFlag)},
				{Flag: extensionFlag, Set: cmd.Bool(extensionFlag)},
				{Flag: counterFlag, Set: cmd.Bool(counterFlag)},
			},
		},
		config.ChoiceSet{
			Name: "output separator",
			Choices: []config.Choice{
				{Flag: print0Flag, Set: cmd.Bool(print0Flag)},
				{Flag: printSpaceFlag, Set: cmd.Bool(printSpaceFlag)},
			},
		},
	)

	if cmd.IsSet(captureGroupFlag) && !cmd.IsSet(regexFlag) {
		err = errors.Join(err, ErrCaptureGroupWithoutRegex)
	}

	if cmd.Int(parallelismFlag) < 0 {
		err = errors.Join(err, fmt.Errorf("%w: %d", ErrInvalidParallelism, cmd.Int(parallelismFlag)))
	}

	return err //nolint:wrapcheck
}

// applyFlags overwrites opts with every flag given on the command line.
func applyFlags(cmd *cli.Command, opts *config.Options) error {
	switch {
	case cmd.Bool(whitespaceFlag):
		opts.Input = input.SpaceSeparator
	case cmd.Bool(nullFlag):
		opts.Input = input.NullSeparator
	case cmd.IsSet(splitFlag):
		sep, err := input.CustomSeparator(cmd.String(splitFlag))
		if err != nil {
			return err //nolint:wrapcheck
		}

		opts.Input = sep
	}

	switch {
	case cmd.Bool(print0Flag):
		opts.Output.Separator = input.NullSeparator
	case cmd.Bool(printSpaceFlag):
		opts.Output.Separator = input.SpaceSeparator
	}

	opts.Grouping = grouping(cmd)

	setBool(cmd, noHeadersFlag, &opts.Output.NoHeaders)
	setBool(cmd, onlyGroupNamesFlag, &opts.Output.OnlyGroupNames)
	setBool(cmd, statsFlag, &opts.Output.Stats)
	setBool(cmd, sequentialFlag, &opts.Sequential)

	if cmd.IsSet(parallelismFlag) {
		opts.Parallelism = cmd.Int(parallelismFlag)
	}

	opts.RunCommand = cmd.String(runCommandFlag)

	return nil
}

func setBool(cmd *cli.Command, name string, dst *bool) {
	if cmd.IsSet(name) {
		*dst = cmd.Bool(name)
	}
}

// grouping returns the specifier of the grouper flag. validateFlags ensures there is exactly one.
func grouping(cmd *cli.Command) grouper.Specifier {
	switch {
	case cmd.IsSet(firstCharsFlag):
		return grouper.Specifier{Kind: grouper.FirstChars, N: cmd.Int(firstCharsFlag)}
	case cmd.IsSet(lastCharsFlag):
		return grouper.Specifier{Kind: grouper.LastChars, N: cmd.Int(lastCharsFlag)}
	case cmd.IsSet(regexFlag):
		spec := grouper.Specifier{Kind: grouper.Regex, Pattern: cmd.String(regexFlag)}

		if cmd.IsSet(captureGroupFlag) {
			cg := grouper.ParseCaptureGroup(cmd.String(captureGroupFlag))
			spec.CaptureGroup = &cg
		}

		return spec
	case cmd.Bool(extensionFlag):
		return grouper.Specifier{Kind: grouper.FileExtension}
	default:
		return grouper.Specifier{Kind: grouper.Counter}
	}
}
