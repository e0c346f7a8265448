// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// Reporter receives the captured output of each group's command.
type Reporter interface {
	Report(key string, output []byte)
}

var (
	_ Reporter = Results(nil)
	_ Reporter = (*Locked[Results])(nil)
)

// Results maps each group key to the output of its command.
// It is not safe for concurrent use; wrap it in Locked for that.
type Results map[string][]byte

// NewResults creates an empty Results.
func NewResults() Results {
	return make(Results)
}

// Report implements Reporter. A second report for the same key replaces the first.
func (r Results) Report(key string, output []byte) {
	r[key] = output
}

// Get returns the output reported for key.
func (r Results) Get(key string) ([]byte, bool) {
	out, ok := r[key]
	return out, ok
}

// Sorted yields every result in ascending key order.
func (r Results) Sorted() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for _, k := range slices.Sorted(maps.Keys(r)) {
			if !yield(k, r[k]) {
				return
			}
		}
	}
}

// Locked guards a Reporter with a mutex so that it can be shared between workers.
type Locked[R Reporter] struct {
	mu    sync.Mutex
	inner R
}

// NewLocked wraps r.
func NewLocked[R Reporter](r R) *Locked[R] {
	return &Locked[R]{inner: r}
}

// Report implements Reporter.
func (l *Locked[R]) Report(key string, output []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.inner.Report(key, output)
}

// Unwrap returns the wrapped Reporter. Call it only once every worker has finished.
func (l *Locked[R]) Unwrap() R {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.inner
}
