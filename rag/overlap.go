package rag

// overlapStart computes where the chunk after the one spanning
// [start, end) begins. It walks backward from the last packed sentence,
// accumulating rune lengths plus one per joining space, until the overlap
// budget is met or the walk reaches the chunk start. The walk stops at the
// first index whose sentence is not part of the overlap; the next chunk
// starts one past it.
//
// The returned index is always at least start+1, so a caller looping on it
// makes forward progress even when a single sentence exceeds the budget or
// the budget exceeds the chunk itself.
func overlapStart(lengths []int, start, end, overlapSize int) int {
	overlap := 0
	idx := end - 1

	for idx >= start && overlap < overlapSize {
		overlap += lengths[idx] + 1
		idx--
	}

	next := idx + 1
	if next <= start {
		next = start + 1
	}
	return next
}
