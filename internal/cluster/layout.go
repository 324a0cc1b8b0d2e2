package cluster

// Layout describes where each rank's payload lands inside a gathered buffer:
// Counts[r] bytes starting at Offsets[r], with no overlap. Total is the sum
// of all counts.
type Layout struct {
	Counts  []int
	Offsets []int
	Total   int
}

// NewLayout computes a contiguous rank-ordered layout from per-rank sizes.
func NewLayout(counts []int) Layout {
	offsets := make([]int, len(counts))
	total := 0
	for r, n := range counts {
		offsets[r] = total
		total += n
	}
	return Layout{Counts: append([]int(nil), counts...), Offsets: offsets, Total: total}
}

// Slice returns rank r's region of a buffer gathered under this layout.
func (l Layout) Slice(buf []byte, r int) []byte {
	return buf[l.Offsets[r] : l.Offsets[r]+l.Counts[r]]
}

// Scale returns the layout obtained by multiplying every count by factor.
// The row-count layout scaled by the row width in bytes yields the value
// layout.
func (l Layout) Scale(factor int) Layout {
	counts := make([]int, len(l.Counts))
	for r, n := range l.Counts {
		counts[r] = n * factor
	}
	return NewLayout(counts)
}
