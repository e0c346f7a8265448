// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"bufio"
	"bytes"
	"errors"
)

// ErrEmptySeparator is returned when a custom separator is the empty string.
var ErrEmptySeparator = errors.New("custom separator must not be empty")

// SeparatorKind identifies how a byte stream is split into tokens.
type SeparatorKind int

const (
	// Line splits on newlines. A trailing carriage return is removed from each token.
	Line SeparatorKind = iota
	// Space splits on runs of Unicode whitespace.
	Space
	// Null splits on the NUL byte.
	Null
	// Custom splits on an arbitrary delimiter string.
	Custom
)

// String implements the Stringer interface for SeparatorKind.
func (k SeparatorKind) String() string {
	switch k {
	case Line:
		return "line"
	case Space:
		return "space"
	case Null:
		return "null"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Separator describes both how input is split and what is written between output records.
// The zero value is the line separator.
type Separator struct {
	Kind  SeparatorKind
	Delim string // only read for Custom
}

// Predefined separators.
var (
	LineSeparator  = Separator{Kind: Line}
	SpaceSeparator = Separator{Kind: Space}
	NullSeparator  = Separator{Kind: Null}
)

// CustomSeparator returns a separator that splits on delim.
func CustomSeparator(delim string) (Separator, error) {
	if delim == "" {
		return Separator{}, ErrEmptySeparator
	}

	return Separator{Kind: Custom, Delim: delim}, nil
}

// String returns the separator text as written between records.
func (s Separator) String() string {
	switch s.Kind {
	case Space:
		return " "
	case Null:
		return "\x00"
	case Custom:
		return s.Delim
	default:
		return "\n"
	}
}

// Bytes returns the separator text as written between records.
func (s Separator) Bytes() []byte {
	return []byte(s.String())
}

// SplitFunc returns the bufio.SplitFunc that tokenises input for this separator.
func (s Separator) SplitFunc() bufio.SplitFunc {
	switch s.Kind {
	case Space:
		return bufio.ScanWords
	case Null:
		return splitOn([]byte{0})
	case Custom:
		return splitOn([]byte(s.Delim))
	default:
		return bufio.ScanLines
	}
}

// splitOn returns a split function for a fixed delimiter.
// No empty token is produced after a final delimiter.
func splitOn(delim []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		if i := bytes.Index(data, delim); i >= 0 {
			return i + len(delim), data[:i], nil
		}

		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	}
}
