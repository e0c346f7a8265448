// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grouper

import (
	"slices"
	"testing"

	"github.com/matt-FFFFFF/groupby/internal/collection"
	"github.com/matt-FFFFFF/groupby/internal/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(n int) *matchers.CaptureGroup {
	return &matchers.CaptureGroup{Number: n}
}

func named(s string) *matchers.CaptureGroup {
	return &matchers.CaptureGroup{Name: s}
}

func TestParseCaptureGroup(t *testing.T) {
	tests := []struct {
		in   string
		want matchers.CaptureGroup
	}{
		{in: "0", want: matchers.CaptureGroup{Number: 0}},
		{in: "2", want: matchers.CaptureGroup{Number: 2}},
		{in: "year", want: matchers.CaptureGroup{Name: "year"}},
		{in: "-1", want: matchers.CaptureGroup{Name: "-1"}},
		{in: "1a", want: matchers.CaptureGroup{Name: "1a"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCaptureGroup(tt.in))
		})
	}
}

func TestSpecifier_Classifier(t *testing.T) {
	tests := []struct {
		name  string
		spec  Specifier
		token string
		want  string
	}{
		{name: "first chars", spec: Specifier{Kind: FirstChars, N: 6}, token: "ecs450 study guide.pdf", want: "ecs450"},
		{name: "last chars", spec: Specifier{Kind: LastChars, N: 3}, token: "ecs450 study guide.pdf", want: "pdf"},
		{name: "first chars zero", spec: Specifier{Kind: FirstChars}, token: "abc", want: ""},
		{
			name:  "regex explicit group",
			spec:  Specifier{Kind: Regex, Pattern: `\w+\W+(\w+)`, CaptureGroup: group(1)},
			token: "Bishop takes queen",
			want:  "takes",
		},
		{
			name:  "regex default uses first group",
			spec:  Specifier{Kind: Regex, Pattern: `\w+\W+(\w+)`},
			token: "Bishop takes queen",
			want:  "takes",
		},
		{
			name:  "regex default without groups uses whole match",
			spec:  Specifier{Kind: Regex, Pattern: `\d+`},
			token: "room 101 left",
			want:  "101",
		},
		{
			name:  "regex named group",
			spec:  Specifier{Kind: Regex, Pattern: `(?P<dept>[a-z]+)(?P<num>\d+)`, CaptureGroup: named("dept")},
			token: "ecs440",
			want:  "ecs",
		},
		{
			name:  "regex no match is empty key",
			spec:  Specifier{Kind: Regex, Pattern: `\d+`},
			token: "no digits here",
			want:  "",
		},
		{name: "extension", spec: Specifier{Kind: FileExtension}, token: "archive.tar.gz", want: "gz"},
		{name: "no extension is empty key", spec: Specifier{Kind: FileExtension}, token: ".bashrc", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classify, err := tt.spec.Classifier()
			require.NoError(t, err)
			assert.Equal(t, tt.want, classify(tt.token))
		})
	}
}

func TestSpecifier_ClassifierErrors(t *testing.T) {
	tests := []struct {
		name string
		spec Specifier
		err  error
	}{
		{name: "negative first", spec: Specifier{Kind: FirstChars, N: -1}, err: ErrInvalidN},
		{name: "negative last", spec: Specifier{Kind: LastChars, N: -3}, err: ErrInvalidN},
		{name: "bad pattern", spec: Specifier{Kind: Regex, Pattern: `(unclosed`}, err: ErrInvalidRegex},
		{
			name: "group number out of range",
			spec: Specifier{Kind: Regex, Pattern: `(a)(b)`, CaptureGroup: group(3)},
			err:  ErrUnknownCaptureGroup,
		},
		{
			name: "unknown group name",
			spec: Specifier{Kind: Regex, Pattern: `(?P<x>a)`, CaptureGroup: named("y")},
			err:  ErrUnknownCaptureGroup,
		},
		{name: "unknown kind", spec: Specifier{Kind: Kind(42)}, err: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classify, err := tt.spec.Classifier()
			require.ErrorIs(t, err, tt.err)
			assert.Nil(t, classify)
		})
	}
}

func TestRunner_EndToEndGrouping(t *testing.T) {
	groups := collection.NewSortedMap[string, string]()
	r, err := NewRunner(groups, Specifier{Kind: FirstChars, N: 6})
	require.NoError(t, err)

	for _, tok := range []string{"ecs440 class notes.tex", "ecs450 class notes.tex", "ecs450 study guide.pdf"} {
		r.Run(tok)
	}

	assert.Equal(t, []string{"ecs440", "ecs450"}, collection.Keys[string, string](r.Groups()))

	got, ok := groups.Get("ecs450")
	require.True(t, ok)
	assert.Equal(t, []string{"ecs450 class notes.tex", "ecs450 study guide.pdf"}, got)
}

func TestRunner_CounterIsPerRunner(t *testing.T) {
	spec := Specifier{Kind: Counter}

	first := collection.NewSortedMap[string, string]()
	r1, err := NewRunner(first, spec)
	require.NoError(t, err)

	for _, tok := range []string{"a", "a", "a"} {
		r1.Run(tok)
	}

	assert.Equal(t, 3, first.Len(), "counter never produces equal keys")

	second := collection.NewHashMap[string, string]()
	r2, err := NewRunner(second, spec)
	require.NoError(t, err)
	r2.Run("b")

	got, ok := second.Get("0")
	require.True(t, ok, "a new runner starts its own sequence at zero")
	assert.Equal(t, []string{"b"}, got)
}

func TestRunner_InvalidSpecifier(t *testing.T) {
	r, err := NewRunner(collection.NewHashMap[string, string](), Specifier{Kind: Regex, Pattern: "["})
	require.ErrorIs(t, err, ErrInvalidRegex)
	assert.Nil(t, r)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "first-chars", FirstChars.String())
	assert.Equal(t, "last-chars", LastChars.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "extension", FileExtension.String())
	assert.Equal(t, "counter", Counter.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestRunner_SameGroupIffSameKey(t *testing.T) {
	tokens := []string{"apple.go", "banana.go", "cherry.rs", "date", ".env", "fig.rs"}
	specs := []Specifier{
		{Kind: FirstChars, N: 1},
		{Kind: LastChars, N: 2},
		{Kind: Regex, Pattern: `\.(\w+)$`},
		{Kind: FileExtension},
	}

	for _, spec := range specs {
		t.Run(spec.Kind.String(), func(t *testing.T) {
			classify, err := spec.Classifier()
			require.NoError(t, err)

			groups := collection.NewHashMap[string, string]()
			r, err := NewRunner(groups, spec)
			require.NoError(t, err)

			for _, tok := range tokens {
				r.Run(tok)
			}

			for _, a := range tokens {
				for _, b := range tokens {
					members, _ := groups.Get(classify(a))
					assert.Equal(t, classify(a) == classify(b), slices.Contains(members, b), "%q %q", a, b)
				}
			}
		})
	}
}
