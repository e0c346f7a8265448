// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/groupby/internal/collection"
)

// Stats summarises the sizes of a set of groups.
type Stats struct {
	TotalItems  int
	TotalGroups int
	Median      int
	Average     float64
	Min         int
	Max         int
}

// Statistics computes Stats for groups. Every field is zero for an empty collection.
// The median of an even number of groups is the upper of the two middle sizes.
func Statistics[C collection.Collection[string, string]](groups C) Stats {
	sizes := make([]int, 0, groups.Len())
	for _, values := range groups.All() {
		sizes = append(sizes, len(values))
	}

	if len(sizes) == 0 {
		return Stats{}
	}

	slices.Sort(sizes)

	total := 0
	for _, n := range sizes {
		total += n
	}

	return Stats{
		TotalItems:  total,
		TotalGroups: len(sizes),
		Median:      sizes[len(sizes)/2],
		Average:     float64(total) / float64(len(sizes)),
		Min:         sizes[0],
		Max:         sizes[len(sizes)-1],
	}
}

// String renders the statistics block.
func (s Stats) String() string {
	return fmt.Sprintf("Statistics:\n"+
		"  Total items: %d\n"+
		"  Total groups: %d\n"+
		"\n"+
		"  Group size:\n"+
		"    Median: %d\n"+
		"    Average: %.2f\n"+
		"    Min: %d\n"+
		"    Max: %d\n",
		s.TotalItems, s.TotalGroups, s.Median, s.Average, s.Min, s.Max)
}
