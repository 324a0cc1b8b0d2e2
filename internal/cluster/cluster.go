// Package cluster implements the process-wide communication context for a
// fixed group of cooperating workers. Workers are goroutines addressed by
// rank; rank 0 is the root. All operations are blocking collectives: every
// rank must invoke the same collectives in the same order, and no rank
// proceeds past one until its part of it is complete. There are no timeouts
// and no cancellation; a rank that never shows up stalls the group.
package cluster

import (
	"fmt"
	"time"
)

// Group is the communication context. It is created once at process start,
// handed a Comm per rank, and closed once at process end.
type Group struct {
	size     int
	barrier  *barrier
	toRoot   []chan []byte
	fromRoot []chan []byte
}

// NewGroup creates a context for size ranks.
func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("group size must be >= 1, got %d", size)
	}
	g := &Group{
		size:     size,
		barrier:  newBarrier(size),
		toRoot:   make([]chan []byte, size),
		fromRoot: make([]chan []byte, size),
	}
	for i := 0; i < size; i++ {
		g.toRoot[i] = make(chan []byte, 1)
		g.fromRoot[i] = make(chan []byte, 1)
	}
	return g, nil
}

// Size returns the number of ranks in the group.
func (g *Group) Size() int { return g.size }

// Comm returns the communicator for one rank. Each rank must use its own.
func (g *Group) Comm(rank int) *Comm {
	if rank < 0 || rank >= g.size {
		panic(fmt.Sprintf("cluster: rank %d out of range [0,%d)", rank, g.size))
	}
	return &Comm{rank: rank, group: g}
}

// Close tears the context down. No collective may be in flight.
func (g *Group) Close() {
	for i := 0; i < g.size; i++ {
		close(g.toRoot[i])
		close(g.fromRoot[i])
	}
}

// Comm is one rank's handle on the group's collectives.
type Comm struct {
	rank  int
	group *Group
}

// Rank returns this worker's ordinal within the group.
func (c *Comm) Rank() int { return c.rank }

// Size returns the group size.
func (c *Comm) Size() int { return c.group.size }

// IsRoot reports whether this rank is the coordinator.
func (c *Comm) IsRoot() bool { return c.rank == 0 }

// Barrier blocks until every rank in the group has reached it. It is
// reusable: consecutive barriers are independent.
func (c *Comm) Barrier() {
	c.group.barrier.await()
}

// Gather is an all-to-one collective: the root receives every rank's
// payload, ordered by rank. Non-root ranks get nil. The payload is handed
// over, not copied; callers must not mutate it afterwards.
func (c *Comm) Gather(payload []byte) [][]byte {
	g := c.group
	if !c.IsRoot() {
		g.toRoot[c.rank] <- payload
		return nil
	}
	parts := make([][]byte, g.size)
	for r := 0; r < g.size; r++ {
		if r == c.rank {
			parts[r] = payload
			continue
		}
		parts[r] = <-g.toRoot[r]
	}
	return parts
}

// Exchange is the payload step of a variable-length all-to-one: each rank's
// payload is copied into the root's pre-sized buffer at its rank's offset.
// Only the root's layout is consulted; non-root ranks pass the zero Layout
// and receive nil. Each payload must be exactly Counts[rank] bytes long.
func (c *Comm) Exchange(layout Layout, payload []byte) []byte {
	parts := c.Gather(payload)
	if !c.IsRoot() {
		return nil
	}
	buf := make([]byte, layout.Total)
	for r, part := range parts {
		copy(buf[layout.Offsets[r]:layout.Offsets[r]+layout.Counts[r]], part)
	}
	return buf
}

// GatherV is the variable-length all-to-one collective. It runs the explicit
// two-step protocol: first every rank's payload size is gathered and the root
// computes a contiguous Layout, then Exchange moves the payloads. The root
// receives the concatenated buffer and the Layout; other ranks receive nil
// and a zero Layout.
func (c *Comm) GatherV(payload []byte) ([]byte, Layout) {
	var layout Layout
	sizes := c.Gather(EncodeInt32s([]int{len(payload)}))
	if c.IsRoot() {
		counts := make([]int, c.Size())
		for r, part := range sizes {
			counts[r] = DecodeInt32s(part)[0]
		}
		layout = NewLayout(counts)
	}
	return c.Exchange(layout, payload), layout
}

// Bcast is a one-to-all collective: the root's payload (length first, then
// bytes) reaches every rank. The root passes the data; other ranks pass nil
// and receive the root's payload.
func (c *Comm) Bcast(payload []byte) []byte {
	g := c.group
	if c.IsRoot() {
		for r := 1; r < g.size; r++ {
			g.fromRoot[r] <- payload
		}
		return payload
	}
	return <-g.fromRoot[c.rank]
}

// MaxDuration reduces each rank's duration to the maximum at the root. The
// slowest rank defines the group's perceived latency. Non-root ranks get 0.
func (c *Comm) MaxDuration(d time.Duration) time.Duration {
	parts := c.Gather(encodeDuration(d))
	if !c.IsRoot() {
		return 0
	}
	var max time.Duration
	for _, part := range parts {
		if v := decodeDuration(part); v > max {
			max = v
		}
	}
	return max
}
