package utils

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// SortedMap iterates m in key order.
func SortedMap[Map ~map[K]V, K cmp.Ordered, V any](m Map) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// SetPath sets value at the dotted path parts inside m, creating
// intermediate maps as needed. Existing non-map values on the way are
// replaced.
func SetPath(m map[string]any, parts []string, value any) {
	if len(parts) == 0 {
		return
	}

	if len(parts) == 1 {
		m[parts[0]] = value
		return
	}

	next, ok := m[parts[0]].(map[string]any)
	if !ok {
		next = map[string]any{}
		m[parts[0]] = next
	}

	SetPath(next, parts[1:], value)
}
