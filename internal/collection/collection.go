// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package collection provides the grouped collections that accumulate tokens per group key.
//
// Two implementations are provided. HashMap iterates in arbitrary order and SortedMap
// iterates in ascending key order. Callers that need deterministic output must use SortedMap.
package collection

import (
	"cmp"
	"iter"

	"github.com/emirpasic/gods/maps/treemap"
)

// Collection is a map from a key to the list of values added under that key.
// Values are kept in the order they were added.
type Collection[K comparable, V any] interface {
	// Add appends v to the list for k, creating the list if k is new.
	Add(k K, v V)
	// Get returns the list for k and whether k is present.
	Get(k K) ([]V, bool)
	// All yields every key exactly once together with its list.
	All() iter.Seq2[K, []V]
	// Len returns the number of distinct keys.
	Len() int
}

var (
	_ Collection[string, string] = (*HashMap[string, string])(nil)
	_ Collection[string, string] = (*SortedMap[string, string])(nil)
)

// HashMap is a Collection with arbitrary iteration order.
type HashMap[K comparable, V any] struct {
	m map[K][]V
}

// NewHashMap creates an empty HashMap.
func NewHashMap[K comparable, V any]() *HashMap[K, V] {
	return &HashMap[K, V]{m: make(map[K][]V)}
}

// Add implements Collection.
func (h *HashMap[K, V]) Add(k K, v V) {
	h.m[k] = append(h.m[k], v)
}

// Get implements Collection.
func (h *HashMap[K, V]) Get(k K) ([]V, bool) {
	v, ok := h.m[k]
	return v, ok
}

// All implements Collection.
func (h *HashMap[K, V]) All() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for k, v := range h.m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Len implements Collection.
func (h *HashMap[K, V]) Len() int {
	return len(h.m)
}

// SortedMap is a Collection that iterates in ascending key order.
// It is backed by a red-black tree.
type SortedMap[K cmp.Ordered, V any] struct {
	tree *treemap.Map
}

// NewSortedMap creates an empty SortedMap.
func NewSortedMap[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return &SortedMap[K, V]{
		tree: treemap.NewWith(func(a, b any) int {
			return cmp.Compare(a.(K), b.(K)) //nolint:forcetypeassert
		}),
	}
}

// Add implements Collection.
func (s *SortedMap[K, V]) Add(k K, v V) {
	if found, ok := s.tree.Get(k); ok {
		list := found.(*[]V) //nolint:forcetypeassert
		*list = append(*list, v)

		return
	}

	s.tree.Put(k, &[]V{v})
}

// Get implements Collection.
func (s *SortedMap[K, V]) Get(k K) ([]V, bool) {
	found, ok := s.tree.Get(k)
	if !ok {
		return nil, false
	}

	return *found.(*[]V), true //nolint:forcetypeassert
}

// All implements Collection.
func (s *SortedMap[K, V]) All() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		it := s.tree.Iterator()
		for it.Next() {
			if !yield(it.Key().(K), *it.Value().(*[]V)) { //nolint:forcetypeassert
				return
			}
		}
	}
}

// Len implements Collection.
func (s *SortedMap[K, V]) Len() int {
	return s.tree.Size()
}

// Keys returns the keys of c in iteration order.
func Keys[K comparable, V any](c Collection[K, V]) []K {
	keys := make([]K, 0, c.Len())
	for k := range c.All() {
		keys = append(keys, k)
	}

	return keys
}

// TotalValues returns the number of values across all keys of c.
func TotalValues[K comparable, V any](c Collection[K, V]) int {
	total := 0
	for _, v := range c.All() {
		total += len(v)
	}

	return total
}
