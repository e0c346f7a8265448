// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bufio"
	"fmt"
	"io"
)

// RecordWriter writes items to an underlying writer, each followed by a separator.
// Output is buffered and flushed at the end of every call.
type RecordWriter struct {
	w   *bufio.Writer
	sep []byte
}

// NewRecordWriter creates a RecordWriter that terminates every item with sep.
func NewRecordWriter(w io.Writer, sep []byte) *RecordWriter {
	return &RecordWriter{w: bufio.NewWriter(w), sep: sep}
}

// Write writes one item and its separator.
func (rw *RecordWriter) Write(item string) error {
	if err := rw.write(item); err != nil {
		return err
	}

	return rw.flush()
}

// WriteAll writes every item, each followed by the separator.
func (rw *RecordWriter) WriteAll(items []string) error {
	for _, item := range items {
		if err := rw.write(item); err != nil {
			return err
		}
	}

	return rw.flush()
}

func (rw *RecordWriter) write(item string) error {
	if _, err := rw.w.WriteString(item); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	if _, err := rw.w.Write(rw.sep); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	return nil
}

func (rw *RecordWriter) flush() error {
	if err := rw.w.Flush(); err != nil {
		return fmt.Errorf("flushing records: %w", err)
	}

	return nil
}
