package bow

// Assigned returns the document indices owned by rank under round-robin
// partitioning: {rank, rank+size, rank+2*size, ...} below total. Every index
// in [0, total) belongs to exactly one rank, and the assignment is a pure
// function of its arguments, so no communication is needed to agree on it.
func Assigned(total, size, rank int) []int {
	if total <= 0 || rank >= total {
		return nil
	}
	indices := make([]int, 0, (total-rank+size-1)/size)
	for idx := rank; idx < total; idx += size {
		indices = append(indices, idx)
	}
	return indices
}
