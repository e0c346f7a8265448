// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the options of a groupby run and loads default values for them
// from a YAML or HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/groupby/internal/grouper"
	"github.com/matt-FFFFFF/groupby/internal/input"
	"github.com/matt-FFFFFF/groupby/internal/output"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// Separator names accepted in a defaults file.
const (
	SeparatorLine   = "line"
	SeparatorSpace  = "space"
	SeparatorNull   = "null"
	SeparatorCustom = "custom"
)

var (
	// ErrParseConfigFile is returned when a defaults file cannot be decoded.
	ErrParseConfigFile = errors.New("failed to parse config file")
	// ErrUnknownConfigFormat is returned for a defaults file that is neither YAML nor HCL.
	ErrUnknownConfigFormat = errors.New("unknown config file format, expected .yaml, .yml or .hcl")
	// ErrInvalidDefault is returned when a value in a defaults file is not allowed.
	ErrInvalidDefault = errors.New("invalid default")
)

// FsFactory returns the filesystem local config files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Options is everything that controls one run.
type Options struct {
	Input       input.Separator
	Grouping    grouper.Specifier
	Output      output.Options
	RunCommand  string // Empty means print the groups instead of running a command.
	Sequential  bool
	Parallelism int    // Maximum concurrent commands, 0 means one per CPU.
	Shell       string // Overrides $SHELL when set.
}

// Defaults are values for Options read from a file. A nil field was not set.
type Defaults struct {
	InputSeparator  *string `yaml:"input_separator"  hcl:"input_separator,optional"`
	CustomSeparator *string `yaml:"custom_separator" hcl:"custom_separator,optional"`
	OutputSeparator *string `yaml:"output_separator" hcl:"output_separator,optional"`
	NoHeaders       *bool   `yaml:"no_headers"       hcl:"no_headers,optional"`
	OnlyGroupNames  *bool   `yaml:"only_group_names" hcl:"only_group_names,optional"`
	Stats           *bool   `yaml:"stats"            hcl:"stats,optional"`
	Sequential      *bool   `yaml:"sequential"       hcl:"sequential,optional"`
	Parallelism     *int    `yaml:"parallelism"      hcl:"parallelism,optional"`
	Shell           *string `yaml:"shell"            hcl:"shell,optional"`
}

// Parse decodes a defaults file, choosing the format from the file name's extension,
// and validates it.
func Parse(filename string, src []byte) (*Defaults, error) {
	var (
		d   Defaults
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = parseYAML(src, &d)
	case ".hcl":
		err = parseHCL(filename, src, &d)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownConfigFormat, filename)
	}

	if err != nil {
		return nil, errors.Join(ErrParseConfigFile, err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

func parseYAML(src []byte, d *Defaults) error {
	if err := yaml.UnmarshalWithOptions(src, d, yaml.Strict()); err != nil {
		return errors.New(yaml.FormatError(err, false, true)) //nolint:err113
	}

	return nil
}

func parseHCL(filename string, src []byte, d *Defaults) error {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return multierror.Append(nil, diags.Errs()...)
	}

	if diags := gohcl.DecodeBody(file.Body, evalContext(), d); diags.HasErrors() {
		return multierror.Append(nil, diags.Errs()...)
	}

	return nil
}

// evalContext exposes the process environment to HCL expressions as env.NAME.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(k) {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

// Validate reports every invalid value in d.
func (d *Defaults) Validate() error {
	var err error

	if d.InputSeparator != nil {
		switch *d.InputSeparator {
		case SeparatorLine, SeparatorSpace, SeparatorNull:
			if d.CustomSeparator != nil {
				err = multierror.Append(err, fmt.Errorf(
					"%w: custom_separator requires input_separator = %q", ErrInvalidDefault, SeparatorCustom))
			}
		case SeparatorCustom:
			if d.CustomSeparator == nil || *d.CustomSeparator == "" {
				err = multierror.Append(err, fmt.Errorf(
					"%w: input_separator = %q requires a non-empty custom_separator", ErrInvalidDefault, SeparatorCustom))
			}
		default:
			err = multierror.Append(err, fmt.Errorf(
				"%w: input_separator %q, expected line, space, null or custom", ErrInvalidDefault, *d.InputSeparator))
		}
	} else if d.CustomSeparator != nil {
		err = multierror.Append(err, fmt.Errorf(
			"%w: custom_separator requires input_separator = %q", ErrInvalidDefault, SeparatorCustom))
	}

	if d.OutputSeparator != nil {
		switch *d.OutputSeparator {
		case SeparatorLine, SeparatorSpace, SeparatorNull:
		default:
			err = multierror.Append(err, fmt.Errorf(
				"%w: output_separator %q, expected line, space or null", ErrInvalidDefault, *d.OutputSeparator))
		}
	}

	if d.Parallelism != nil && *d.Parallelism < 0 {
		err = multierror.Append(err, fmt.Errorf("%w: parallelism must not be negative", ErrInvalidDefault))
	}

	if d.Shell != nil && *d.Shell == "" {
		err = multierror.Append(err, fmt.Errorf("%w: shell must not be empty", ErrInvalidDefault))
	}

	return err //nolint:wrapcheck
}

// Apply copies every value set in d into opts.
// Call it before applying command line flags so that flags win.
func (d *Defaults) Apply(opts *Options) error {
	if d == nil {
		return nil
	}

	if d.InputSeparator != nil {
		sep, err := inputSeparator(*d.InputSeparator, d.CustomSeparator)
		if err != nil {
			return err
		}

		opts.Input = sep
	}

	if d.OutputSeparator != nil {
		sep, err := inputSeparator(*d.OutputSeparator, nil)
		if err != nil {
			return err
		}

		opts.Output.Separator = sep
	}

	setIf(&opts.Output.NoHeaders, d.NoHeaders)
	setIf(&opts.Output.OnlyGroupNames, d.OnlyGroupNames)
	setIf(&opts.Output.Stats, d.Stats)
	setIf(&opts.Sequential, d.Sequential)
	setIf(&opts.Parallelism, d.Parallelism)
	setIf(&opts.Shell, d.Shell)

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func inputSeparator(name string, custom *string) (input.Separator, error) {
	switch name {
	case SeparatorLine:
		return input.LineSeparator, nil
	case SeparatorSpace:
		return input.SpaceSeparator, nil
	case SeparatorNull:
		return input.NullSeparator, nil
	case SeparatorCustom:
		if custom == nil {
			return input.Separator{}, input.ErrEmptySeparator
		}

		return input.CustomSeparator(*custom) //nolint:wrapcheck
	default:
		return input.Separator{}, fmt.Errorf("%w: separator %q", ErrInvalidDefault, name)
	}
}
