// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package grouper binds one matcher, chosen from a Specifier, to a grouped collection.
package grouper

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/matt-FFFFFF/groupby/internal/collection"
	"github.com/matt-FFFFFF/groupby/internal/matchers"
)

var (
	// ErrInvalidN is returned when a character count is negative.
	ErrInvalidN = errors.New("character count must not be negative")
	// ErrInvalidRegex is returned when the pattern does not compile.
	ErrInvalidRegex = errors.New("invalid regular expression")
	// ErrUnknownCaptureGroup is returned when the capture group does not exist in the pattern.
	ErrUnknownCaptureGroup = errors.New("unknown capture group")
	// ErrUnknownKind is returned for a Specifier with an unrecognised Kind.
	ErrUnknownKind = errors.New("unknown grouping kind")
)

// Kind selects the matcher used for grouping.
type Kind int

const (
	// FirstChars groups by the first N characters.
	FirstChars Kind = iota
	// LastChars groups by the last N characters.
	LastChars
	// Regex groups by a regular expression capture group.
	Regex
	// FileExtension groups by the text after the last dot.
	FileExtension
	// Counter puts every token in its own group.
	Counter
)

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	switch k {
	case FirstChars:
		return "first-chars"
	case LastChars:
		return "last-chars"
	case Regex:
		return "regex"
	case FileExtension:
		return "extension"
	case Counter:
		return "counter"
	default:
		return "unknown"
	}
}

// Specifier describes how tokens are grouped. Only the fields relevant to Kind are read.
type Specifier struct {
	Kind Kind
	// N is the character count for FirstChars and LastChars.
	N int
	// Pattern is the regular expression for Regex.
	Pattern string
	// CaptureGroup is the group that supplies the key for Regex.
	// When nil, the first group is used if the pattern has one, otherwise the whole match.
	CaptureGroup *matchers.CaptureGroup
}

// ParseCaptureGroup parses a capture group as given on the command line.
// A string of digits selects a group by number, anything else selects it by name.
func ParseCaptureGroup(s string) matchers.CaptureGroup {
	if n, err := strconv.ParseUint(s, 10, 31); err == nil {
		return matchers.CaptureGroup{Number: int(n)}
	}

	return matchers.CaptureGroup{Name: s}
}

// Classifier computes the group key of a token.
type Classifier func(token string) string

// Classifier validates the specifier and returns the function that computes group keys.
// It is the only place the Kind is inspected.
func (s Specifier) Classifier() (Classifier, error) {
	switch s.Kind {
	case FirstChars, LastChars:
		if s.N < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidN, s.N)
		}

		n := s.N
		if s.Kind == FirstChars {
			return func(token string) string { return matchers.FirstNChars(token, n) }, nil
		}

		return func(token string) string { return matchers.LastNChars(token, n) }, nil

	case Regex:
		re, group, err := compile(s.Pattern, s.CaptureGroup)
		if err != nil {
			return nil, err
		}

		return func(token string) string {
			key, _ := matchers.Regex(token, re, group)
			return key
		}, nil

	case FileExtension:
		return func(token string) string {
			ext, _ := matchers.FileExtension(token)
			return ext
		}, nil

	case Counter:
		c := new(matchers.Counter)

		return func(string) string {
			return strconv.FormatUint(c.Next(), 10)
		}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, s.Kind)
}

func compile(pattern string, cg *matchers.CaptureGroup) (*regexp.Regexp, matchers.CaptureGroup, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, matchers.CaptureGroup{}, errors.Join(ErrInvalidRegex, err)
	}

	if cg == nil {
		if re.NumSubexp() > 0 {
			return re, matchers.CaptureGroup{Number: 1}, nil
		}

		return re, matchers.CaptureGroup{}, nil
	}

	group := *cg

	switch {
	case group.Name != "":
		if re.SubexpIndex(group.Name) < 0 {
			return nil, group, fmt.Errorf("%w: no group named %q in %q", ErrUnknownCaptureGroup, group.Name, pattern)
		}
	case group.Number < 0 || group.Number > re.NumSubexp():
		return nil, group, fmt.Errorf(
			"%w: group %d requested but %q has %d", ErrUnknownCaptureGroup, group.Number, pattern, re.NumSubexp(),
		)
	}

	return re, group, nil
}

// Runner binds a classifier to a grouped collection for the duration of a run.
type Runner[C collection.Collection[string, string]] struct {
	groups   C
	classify Classifier
}

// NewRunner validates spec and binds its matcher to groups.
// Configuration errors are returned here, never per token.
func NewRunner[C collection.Collection[string, string]](groups C, spec Specifier) (*Runner[C], error) {
	classify, err := spec.Classifier()
	if err != nil {
		return nil, err
	}

	return &Runner[C]{groups: groups, classify: classify}, nil
}

// Run adds token to the group selected by the bound matcher.
func (r *Runner[C]) Run(token string) {
	r.groups.Add(r.classify(token), token)
}

// Groups returns the collection the runner adds to.
func (r *Runner[C]) Groups() C {
	return r.groups
}
