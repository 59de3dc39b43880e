package stitch

import (
	"slices"
	"time"
)

// runs sorts a copy of items by start and splits it into maximal runs where
// every item joins the run ending with prev.
func runs[T any](items []T, start func(T) time.Time, join func(prev, next T) bool) [][]T {
	if len(items) == 0 {
		return nil
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return start(a).Compare(start(b))
	})

	out := make([][]T, 0, 1)
	current := []T{sorted[0]}
	for _, item := range sorted[1:] {
		if join(current[len(current)-1], item) {
			current = append(current, item)
			continue
		}
		out = append(out, current)
		current = []T{item}
	}
	return append(out, current)
}
