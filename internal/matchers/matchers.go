// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package matchers contains the functions that compute a group key from a single token.
// All matchers are pure except Counter, which carries its own sequence.
package matchers

import (
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// FirstNChars returns the first n characters (runes) of s.
// If n is larger than the number of characters in s, s is returned unchanged.
func FirstNChars(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}

	for i := range s {
		if n == 0 {
			return s[:i]
		}

		n--
	}

	return s
}

// LastNChars returns the last n characters (runes) of s.
// If n is larger than the number of characters in s, s is returned unchanged.
func LastNChars(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}

	end := len(s)
	for end > 0 && n > 0 {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
		n--
	}

	return s[end:]
}

// CaptureGroup selects the capture group of a regular expression match that supplies the key.
// A non-empty Name takes precedence over Number. Number 0 is the whole match.
type CaptureGroup struct {
	Number int
	Name   string
}

// String returns the group as it would be written on the command line.
func (g CaptureGroup) String() string {
	if g.Name != "" {
		return g.Name
	}

	return strconv.Itoa(g.Number)
}

// Regex runs re against s and returns the text of the requested capture group.
// The whole match is returned when the group did not participate in the match.
// The boolean result is false when re does not match s.
func Regex(s string, re *regexp.Regexp, group CaptureGroup) (string, bool) {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", false
	}

	idx := group.Number
	if group.Name != "" {
		idx = re.SubexpIndex(group.Name)
	}

	if idx > 0 && 2*idx+1 < len(loc) && loc[2*idx] >= 0 {
		return s[loc[2*idx]:loc[2*idx+1]], true
	}

	return s[loc[0]:loc[1]], true
}

// FileExtension returns the text after the last '.' in s.
// It reports false when s has no '.', when the only '.' starts the name, or when s ends in '.'.
func FileExtension(s string) (string, bool) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return "", false
	}

	return s[i+1:], true
}

// Counter is a strictly increasing sequence starting at zero.
// The zero value is ready to use and it is safe for concurrent use.
type Counter struct {
	n atomic.Uint64
}

// Next returns the next value in the sequence.
func (c *Counter) Next() uint64 {
	return c.n.Add(1) - 1
}
