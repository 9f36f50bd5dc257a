package board

import "slices"

// Reposition returns a copy of s with the element at removeAt moved to
// insertAt. insertAt is interpreted against the sequence after removal.
// Out-of-range indices are clamped: removeAt to [0, len-1] and insertAt
// to [0, len-1]. An empty sequence is returned unchanged.
func Reposition[T any](s []T, removeAt, insertAt int) []T {
	out := slices.Clone(s)
	if len(out) == 0 {
		return out
	}
	removeAt = clamp(removeAt, 0, len(out)-1)
	el := out[removeAt]
	out = slices.Delete(out, removeAt, removeAt+1)
	insertAt = clamp(insertAt, 0, len(out))
	return slices.Insert(out, insertAt, el)
}

// Transfer removes the element at removeAt from src and inserts it at
// insertAt in dst, returning fresh copies of both. Indices are clamped to
// the valid range of each sequence. If src is empty both are returned
// unchanged.
func Transfer[T any](src, dst []T, removeAt, insertAt int) ([]T, []T) {
	newSrc := slices.Clone(src)
	newDst := slices.Clone(dst)
	if len(newSrc) == 0 {
		return newSrc, newDst
	}
	removeAt = clamp(removeAt, 0, len(newSrc)-1)
	el := newSrc[removeAt]
	newSrc = slices.Delete(newSrc, removeAt, removeAt+1)
	insertAt = clamp(insertAt, 0, len(newDst))
	return newSrc, slices.Insert(newDst, insertAt, el)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
