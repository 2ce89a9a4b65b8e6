package builtins

import (
	"fmt"

	"colibri/pkg/ids"
)

// BinSearchMagicID performs a binary search for a magic string id in a
// sorted array of ids. The array must be sorted in ascending order; each
// per-builtin property-name list is validated once at package init.
//
// Returns the index of the id, or -1 when it is not present.
func BinSearchMagicID(list []ids.MagicStringID, key ids.MagicStringID) int {
	min, max := 0, len(list)-1
	for min <= max {
		mid := (min + max) / 2
		switch {
		case list[mid] == key:
			return mid
		case list[mid] > key:
			max = mid - 1
		default:
			min = mid + 1
		}
	}
	return -1
}

// assertSortedIDs checks the ascending-order invariant binary search relies
// on. Called from module init; a violation is a compile-in mistake, not a
// runtime condition.
func assertSortedIDs(owner string, list []ids.MagicStringID) {
	for i := 1; i < len(list); i++ {
		if list[i-1] >= list[i] {
			panic(fmt.Sprintf("builtins: %s property names not sorted at index %d (%s >= %s)",
				owner, i, list[i-1], list[i]))
		}
	}
}
