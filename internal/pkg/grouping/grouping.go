// Package grouping partitions slices into keyed, ordered groups.
package grouping

import "slices"

// Group is one partition produced by By.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// By partitions items by the key returned from key and orders the groups with
// compare. Groups whose keys compare equal keep the order in which their key
// first appeared. Items inside a group keep their input order. Empty input
// yields an empty, non-nil slice.
func By[K comparable, T any](items []T, key func(T) K, compare func(a, b K) int) []Group[K, T] {
	index := make(map[K]int)
	groups := make([]Group[K, T], 0)

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	slices.SortStableFunc(groups, func(a, b Group[K, T]) int {
		return compare(a.Key, b.Key)
	})

	return groups
}
