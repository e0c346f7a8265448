// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrConflictingOptions is returned when more than one option of an exclusive set is given.
	ErrConflictingOptions = errors.New("conflicting options")
	// ErrNoGrouper is returned when no grouper option is given.
	ErrNoGrouper = errors.New("exactly one grouper option is required")
)

// Choice is one option of a mutually exclusive set, and whether it was given.
type Choice struct {
	Flag string
	Set  bool
}

// ChoiceSet is a named set of mutually exclusive options.
type ChoiceSet struct {
	Name     string
	Required bool
	Choices  []Choice
}

// ValidateChoices checks every set and reports all problems together.
// A required set with nothing given is reported as ErrNoGrouper, the only required set groupby has.
func ValidateChoices(sets ...ChoiceSet) error {
	var err error

	for _, s := range sets {
		var given, all []string

		for _, c := range s.Choices {
			all = append(all, "--"+c.Flag)
			if c.Set {
				given = append(given, "--"+c.Flag)
			}
		}

		switch {
		case len(given) > 1:
			err = multierror.Append(err, fmt.Errorf("%w: choose at most one %s option, got %s",
				ErrConflictingOptions, s.Name, strings.Join(given, ", ")))
		case len(given) == 0 && s.Required:
			err = multierror.Append(err, fmt.Errorf("%w: choose one of %s", ErrNoGrouper, strings.Join(all, ", ")))
		}
	}

	return err //nolint:wrapcheck
}
