// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teewriter captures a child's standard output while tracking its last complete line.
package teewriter

import (
	"bytes"
	"strings"
	"sync"
)

const ellipsis = "..."

// LastLineWriter is an io.Writer that keeps everything written to it, up to a limit,
// and remembers the last complete line for progress display.
// It is safe for concurrent use.
type LastLineWriter struct {
	fullBuffer     bytes.Buffer
	limit          int
	overflowed     bool
	lastLine       string
	partialBuilder strings.Builder // bytes after the last newline
	onLine         func(line string)
	mu             sync.RWMutex
}

// Option configures a LastLineWriter.
type Option func(*LastLineWriter)

// WithLimit caps the captured output, and the tracked line, at n bytes.
// Bytes past the cap are discarded and Overflowed reports true. n <= 0 means no cap.
func WithLimit(n int) Option {
	return func(w *LastLineWriter) {
		w.limit = n
	}
}

// WithLineCallback registers fn to be called with every complete line.
// fn is called with the writer's lock held and must not call back into the writer.
func WithLineCallback(fn func(line string)) Option {
	return func(w *LastLineWriter) {
		w.onLine = fn
	}
}

// New creates a LastLineWriter.
func New(opts ...Option) *LastLineWriter {
	w := &LastLineWriter{}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write implements io.Writer. It never returns an error so the producer is never cut off;
// use Overflowed to find out whether output was discarded.
func (w *LastLineWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	keep := p
	if w.limit > 0 {
		room := w.limit - w.fullBuffer.Len()
		if room < len(keep) {
			keep = keep[:max(room, 0)]
			w.overflowed = true
		}
	}

	w.fullBuffer.Write(keep)
	w.processNewData(string(p))

	return len(p), nil
}

// processNewData updates the last line. Must be called with the write lock held.
func (w *LastLineWriter) processNewData(data string) {
	for {
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			w.appendPartial(data)
			return
		}

		w.appendPartial(data[:i])
		w.lastLine = w.partialBuilder.String()
		w.partialBuilder.Reset()

		if w.onLine != nil {
			w.onLine(w.lastLine)
		}

		data = data[i+1:]
	}
}

// appendPartial adds s to the current line. With a limit, the line is cut at limit bytes.
func (w *LastLineWriter) appendPartial(s string) {
	if w.limit > 0 {
		s = s[:min(len(s), max(w.limit-w.partialBuilder.Len(), 0))]
	}

	w.partialBuilder.WriteString(s)
}

// LastLine returns the last complete line written, or "" if there is none yet.
// If maxLength > 0 the line is truncated to maxLength bytes, ending in "...".
func (w *LastLineWriter) LastLine(maxLength int) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	line := w.lastLine
	if maxLength > len(ellipsis) && len(line) > maxLength {
		line = line[:maxLength-len(ellipsis)] + ellipsis
	}

	return line
}

// PartialLine returns the data written after the last newline.
func (w *LastLineWriter) PartialLine() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.partialBuilder.String()
}

// Bytes returns a copy of the captured output.
func (w *LastLineWriter) Bytes() []byte {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return bytes.Clone(w.fullBuffer.Bytes())
}

// Len returns the number of captured bytes.
func (w *LastLineWriter) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.fullBuffer.Len()
}

// Overflowed reports whether any output was discarded because of the limit.
func (w *LastLineWriter) Overflowed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.overflowed
}

// Reset clears all captured state. The limit and callback are kept.
func (w *LastLineWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.fullBuffer.Reset()
	w.lastLine = ""
	w.partialBuilder.Reset()
	w.overflowed = false
}
