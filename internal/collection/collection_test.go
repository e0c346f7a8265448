// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package collection

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	k string
	v string
}

var fixture = []pair{
	{"Dogs", "Lassy"},
	{"Cats", "Meowser"},
	{"Dogs", "Buddy"},
	{"Cats", "Mittens"},
	{"", "nomatch"},
	{"Birds", "Tweety"},
}

func implementations() map[string]func() Collection[string, string] {
	return map[string]func() Collection[string, string]{
		"HashMap":   func() Collection[string, string] { return NewHashMap[string, string]() },
		"SortedMap": func() Collection[string, string] { return NewSortedMap[string, string]() },
	}
}

func TestCollection_RoundTrip(t *testing.T) {
	for name, newFn := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newFn()
			for _, p := range fixture {
				c.Add(p.k, p.v)
			}

			got, ok := c.Get("Dogs")
			require.True(t, ok)
			assert.Equal(t, []string{"Lassy", "Buddy"}, got)

			got, ok = c.Get("Cats")
			require.True(t, ok)
			assert.Equal(t, []string{"Meowser", "Mittens"}, got)

			got, ok = c.Get("")
			require.True(t, ok, "empty key is a valid group")
			assert.Equal(t, []string{"nomatch"}, got)

			_, ok = c.Get("Fish")
			assert.False(t, ok)

			assert.Equal(t, 4, c.Len())
			assert.Equal(t, 6, TotalValues(c))
		})
	}
}

func TestCollection_AllVisitsEveryKeyOnce(t *testing.T) {
	for name, newFn := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newFn()
			for _, p := range fixture {
				c.Add(p.k, p.v)
			}

			seen := make(map[string]int)
			for k, v := range c.All() {
				seen[k]++

				want, _ := c.Get(k)
				assert.Equal(t, want, v)
			}

			assert.ElementsMatch(t, []string{"", "Birds", "Cats", "Dogs"}, slices.Collect(maps.Keys(seen)))

			for k, n := range seen {
				assert.Equal(t, 1, n, "key %q visited more than once", k)
			}
		})
	}
}

func TestSortedMap_Order(t *testing.T) {
	c := NewSortedMap[string, string]()
	for _, p := range fixture {
		c.Add(p.k, p.v)
	}

	assert.Equal(t, []string{"", "Birds", "Cats", "Dogs"}, Keys[string, string](c))
}

func TestSortedMap_IntKeys(t *testing.T) {
	c := NewSortedMap[int, string]()
	c.Add(10, "ten")
	c.Add(2, "two")
	c.Add(-1, "minus one")
	c.Add(2, "deux")

	assert.Equal(t, []int{-1, 2, 10}, Keys[int, string](c))

	got, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, []string{"two", "deux"}, got)
}

func TestCollection_AllStopsEarly(t *testing.T) {
	for name, newFn := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newFn()
			for _, p := range fixture {
				c.Add(p.k, p.v)
			}

			n := 0
			for range c.All() {
				n++
				if n == 2 {
					break
				}
			}

			assert.Equal(t, 2, n)
		})
	}
}

func TestCollection_Empty(t *testing.T) {
	for name, newFn := range implementations() {
		t.Run(name, func(t *testing.T) {
			c := newFn()
			assert.Equal(t, 0, c.Len())
			assert.Empty(t, Keys(c))
			assert.Equal(t, 0, TotalValues(c))
		})
	}
}
