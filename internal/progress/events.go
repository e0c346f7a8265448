// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a real-time update about the command running for one group.
type Event struct {
	Group     string    // Key of the group the command runs for
	Type      EventType // What happened
	Message   string    // Human-readable status message
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventQueued indicates a group is waiting for a free worker.
	EventQueued EventType = iota
	// EventStarted indicates the group's command has been spawned.
	EventStarted
	// EventOutput indicates the command wrote a complete line to stdout.
	EventOutput
	// EventCompleted indicates the command exited and its output was collected.
	EventCompleted
	// EventFailed indicates an I/O error while running the command.
	EventFailed
	// EventSkipped indicates the group was never dispatched because the run stopped early.
	EventSkipped
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventQueued:
		return "queued"
	case EventStarted:
		return "started"
	case EventOutput:
		return "output"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for progress events.
type EventData struct {
	// For EventQueued
	Items int // Number of values that will be fed to the command

	// For EventOutput
	OutputLine string

	// For EventCompleted
	ExitCode int // Exit code of the command, -1 if it was killed by a signal
	Bytes    int // Size of the captured stdout

	// For EventFailed
	Error error
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends a progress event. Implementations must be non-blocking
	// and safe for concurrent use.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives progress events.
type Listener interface {
	// OnEvent is called for each event, from a single goroutine.
	OnEvent(event Event)
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
