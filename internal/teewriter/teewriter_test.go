// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teewriter

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastLineWriter_Basic(t *testing.T) {
	tests := []struct {
		name        string
		writes      []string
		wantLast    string
		wantPartial string
	}{
		{name: "no newline", writes: []string{"hello"}, wantLast: "", wantPartial: "hello"},
		{name: "single line", writes: []string{"hello\n"}, wantLast: "hello", wantPartial: ""},
		{name: "multiple lines", writes: []string{"a\nb\nc\n"}, wantLast: "c", wantPartial: ""},
		{name: "trailing partial", writes: []string{"a\nb\npart"}, wantLast: "b", wantPartial: "part"},
		{name: "split across writes", writes: []string{"hel", "lo\nwor", "ld\n"}, wantLast: "world", wantPartial: ""},
		{name: "empty line", writes: []string{"a\n\n"}, wantLast: "", wantPartial: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			for _, s := range tt.writes {
				n, err := io.WriteString(w, s)
				require.NoError(t, err)
				assert.Equal(t, len(s), n)
			}

			assert.Equal(t, tt.wantLast, w.LastLine(0))
			assert.Equal(t, tt.wantPartial, w.PartialLine())
			assert.Equal(t, strings.Join(tt.writes, ""), string(w.Bytes()))
		})
	}
}

func TestLastLineWriter_LineCallback(t *testing.T) {
	var lines []string

	w := New(WithLineCallback(func(line string) {
		lines = append(lines, line)
	}))

	_, err := io.WriteString(w, "one\ntw")
	require.NoError(t, err)
	_, err = io.WriteString(w, "o\nthree")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestLastLineWriter_Limit(t *testing.T) {
	w := New(WithLimit(5))

	n, err := io.WriteString(w, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, w.Overflowed())

	n, err = io.WriteString(w, "defgh\n")
	require.NoError(t, err)
	assert.Equal(t, 6, n, "writes report full length so the producer is never cut off")
	assert.True(t, w.Overflowed())
	assert.Equal(t, "abcde", string(w.Bytes()))
	assert.Equal(t, 5, w.Len())
	assert.Equal(t, "abcde", w.LastLine(0))

	_, err = io.WriteString(w, "more")
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(w.Bytes()))
}

func TestLastLineWriter_LimitBoundsPartialLine(t *testing.T) {
	w := New(WithLimit(10))

	_, err := io.WriteString(w, strings.Repeat("z", 1000))
	require.NoError(t, err)

	assert.Equal(t, 10, w.Len())
	assert.Equal(t, strings.Repeat("z", 10), w.PartialLine())

	_, err = io.WriteString(w, strings.Repeat("z", 1000)+"\n")
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("z", 10), w.LastLine(0))
	assert.Empty(t, w.PartialLine())
}

func TestLastLineWriter_NoLimitByDefault(t *testing.T) {
	w := New()
	big := strings.Repeat("0123456789", 1_000_000)

	_, err := io.WriteString(w, big)
	require.NoError(t, err)

	assert.False(t, w.Overflowed())
	assert.Equal(t, len(big), w.Len())
	assert.Len(t, w.PartialLine(), len(big))
}

func TestLastLineWriter_Truncate(t *testing.T) {
	w := New()
	_, err := io.WriteString(w, "a very long line of output\n")
	require.NoError(t, err)

	assert.Equal(t, "a very ...", w.LastLine(10))
	assert.Equal(t, "a very long line of output", w.LastLine(100))
}

func TestLastLineWriter_Reset(t *testing.T) {
	w := New(WithLimit(2))
	_, err := io.WriteString(w, "abc\nd")
	require.NoError(t, err)

	w.Reset()

	assert.Empty(t, w.Bytes())
	assert.Empty(t, w.LastLine(0))
	assert.Empty(t, w.PartialLine())
	assert.False(t, w.Overflowed())
}

func TestLastLineWriter_BytesIsCopy(t *testing.T) {
	w := New()
	_, err := io.WriteString(w, "abc")
	require.NoError(t, err)

	b := w.Bytes()
	b[0] = 'x'

	assert.Equal(t, "abc", string(w.Bytes()))
}

func TestLastLineWriter_Concurrent(t *testing.T) {
	w := New()

	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 100 {
				_, _ = fmt.Fprintf(w, "%d-%d\n", i, j)
				_ = w.LastLine(0)
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1000, strings.Count(string(w.Bytes()), "\n"))
}
