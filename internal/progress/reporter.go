// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"

	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
)

var (
	_ Reporter = (*ChannelReporter)(nil)
	_ Reporter = (*NullReporter)(nil)
	_ Listener = (*LogListener)(nil)
)

// ChannelReporter implements Reporter using a buffered channel.
// Events are dropped rather than block the sender when the buffer is full.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer size.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.Report.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	case <-cr.ctx.Done():
	default:
		// buffer full, drop
	}
}

// Close implements Reporter.Close. Buffered events are delivered to the
// listener before Close returns.
func (cr *ChannelReporter) Close() {
	cr.mu.Lock()
	if cr.closed {
		cr.mu.Unlock()
		return
	}

	cr.closed = true
	close(cr.ch)
	cr.mu.Unlock()

	cr.wg.Wait()
	cr.cancel()
}

// Listen forwards events to listener from a new goroutine until the reporter is closed
// or its context is cancelled.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Events returns a read-only channel of progress events.
// Use it instead of Listen to handle events manually.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}

// LogListener writes each event to the context logger at info level.
// Output lines are logged at debug level since they can be very chatty.
type LogListener struct {
	ctx context.Context //nolint:containedctx
}

// NewLogListener creates a LogListener that logs with the logger carried by ctx.
func NewLogListener(ctx context.Context) *LogListener {
	return &LogListener{ctx: ctx}
}

// OnEvent implements Listener.
func (l *LogListener) OnEvent(event Event) {
	args := []any{"group", event.Group, "event", event.Type.String()}

	switch event.Type {
	case EventQueued:
		args = append(args, "items", event.Data.Items)
	case EventOutput:
		ctxlog.Debug(l.ctx, event.Message, append(args, "line", event.Data.OutputLine)...)
		return
	case EventCompleted:
		args = append(args, "exitCode", event.Data.ExitCode, "bytes", event.Data.Bytes)
	case EventFailed:
		args = append(args, "error", event.Data.Error)
		ctxlog.Error(l.ctx, event.Message, args...)

		return
	}

	ctxlog.Info(l.ctx, event.Message, args...)
}
