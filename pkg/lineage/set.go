package lineage

import "slices"

// Set is a sorted, de-duplicated collection of leaf identifiers.
// The zero value is an empty set.
type Set []int64

// NewSet builds a Set from ids in any order. Duplicates are dropped.
// The input slice is not modified and the result is never nil.
func NewSet(ids ...int64) Set {
	s := make([]int64, len(ids))
	copy(s, ids)
	slices.Sort(s)
	return Set(slices.Compact(s))
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int { return len(s) }

// Contains reports whether id is a member of s.
func (s Set) Contains(id int64) bool {
	_, ok := slices.BinarySearch(s, id)
	return ok
}

// ContainsAll reports whether every identifier of other is in s.
// An empty other is contained in every set.
func (s Set) ContainsAll(other Set) bool {
	if len(other) > len(s) {
		return false
	}
	i := 0
	for _, id := range other {
		for i < len(s) && s[i] < id {
			i++
		}
		if i == len(s) || s[i] != id {
			return false
		}
		i++
	}
	return true
}

// Overlaps reports whether s and other share at least one identifier.
func (s Set) Overlaps(other Set) bool {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			return true
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Equal reports whether s and other hold the same identifiers.
func (s Set) Equal(other Set) bool { return slices.Equal(s, other) }

// IsSorted reports whether s satisfies the sorted, de-duplicated invariant.
// Sets decoded from external storage should be checked (or rebuilt with
// NewSet) before use.
func (s Set) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}
