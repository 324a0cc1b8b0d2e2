package cluster

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// runGroup drives one collective program on every rank of a fresh group.
func runGroup(t *testing.T, size int, fn func(c *Comm)) {
	t.Helper()
	group, err := NewGroup(size)
	if err != nil {
		t.Fatalf("NewGroup(%d): %v", size, err)
	}
	defer group.Close()

	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			fn(group.Comm(rank))
		}(rank)
	}
	wg.Wait()
}

func TestNewGroupRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewGroup(size); err == nil {
			t.Errorf("NewGroup(%d) succeeded, want error", size)
		}
	}
}

func TestGatherRankOrder(t *testing.T) {
	runGroup(t, 4, func(c *Comm) {
		parts := c.Gather([]byte{byte(c.Rank()), byte(c.Rank())})
		if !c.IsRoot() {
			if parts != nil {
				t.Errorf("rank %d: non-root Gather returned %v, want nil", c.Rank(), parts)
			}
			return
		}
		for r, part := range parts {
			want := []byte{byte(r), byte(r)}
			if !bytes.Equal(part, want) {
				t.Errorf("gathered part %d = %v, want %v", r, part, want)
			}
		}
	})
}

func TestGatherVLayoutAndContent(t *testing.T) {
	payloads := [][]byte{
		[]byte("alpha"),
		[]byte("be"),
		nil, // a rank with nothing to contribute
		[]byte("gamma!"),
	}
	runGroup(t, 4, func(c *Comm) {
		buf, layout := c.GatherV(payloads[c.Rank()])
		if !c.IsRoot() {
			return
		}
		if want := "alphabegamma!"; string(buf) != want {
			t.Errorf("gathered buffer = %q, want %q", buf, want)
		}
		wantCounts := []int{5, 2, 0, 6}
		if !reflect.DeepEqual(layout.Counts, wantCounts) {
			t.Errorf("layout counts = %v, want %v", layout.Counts, wantCounts)
		}
		wantOffsets := []int{0, 5, 7, 7}
		if !reflect.DeepEqual(layout.Offsets, wantOffsets) {
			t.Errorf("layout offsets = %v, want %v", layout.Offsets, wantOffsets)
		}
		if layout.Total != 13 {
			t.Errorf("layout total = %d, want 13", layout.Total)
		}
		for r := 0; r < 4; r++ {
			if got := layout.Slice(buf, r); !bytes.Equal(got, payloads[r]) {
				t.Errorf("slice for rank %d = %q, want %q", r, got, payloads[r])
			}
		}
	})
}

func TestExchangeWithScaledLayout(t *testing.T) {
	// Two "rows" on rank 0, one on rank 1, none on rank 2, width 3 ints.
	rows := [][]int{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9},
		nil,
	}
	rowCounts := []int{2, 1, 0}
	runGroup(t, 3, func(c *Comm) {
		var layout Layout
		if c.IsRoot() {
			layout = NewLayout(rowCounts).Scale(4 * 3)
		}
		buf := c.Exchange(layout, EncodeInt32s(rows[c.Rank()]))
		if !c.IsRoot() {
			if buf != nil {
				t.Errorf("rank %d: non-root Exchange returned data", c.Rank())
			}
			return
		}
		got := DecodeInt32s(buf)
		want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("exchanged values = %v, want %v", got, want)
		}
	})
}

func TestBcast(t *testing.T) {
	runGroup(t, 4, func(c *Comm) {
		var payload []byte
		if c.IsRoot() {
			payload = []byte("vocabulary listing")
		}
		got := c.Bcast(payload)
		if string(got) != "vocabulary listing" {
			t.Errorf("rank %d received %q", c.Rank(), got)
		}
	})
}

func TestBcastEmpty(t *testing.T) {
	runGroup(t, 3, func(c *Comm) {
		if got := c.Bcast(nil); len(got) != 0 {
			t.Errorf("rank %d: broadcast of empty payload yielded %q", c.Rank(), got)
		}
	})
}

func TestBarrierIsReusable(t *testing.T) {
	const size = 5
	const phases = 3
	var counter atomic.Int64
	runGroup(t, size, func(c *Comm) {
		for phase := 1; phase <= phases; phase++ {
			counter.Add(1)
			c.Barrier()
			// Between barriers the counter is stable at size*phase; a
			// leaked rank from a previous phase would overshoot.
			if got := counter.Load(); got != int64(size*phase) {
				t.Errorf("rank %d phase %d: counter = %d, want %d", c.Rank(), phase, got, size*phase)
			}
			c.Barrier()
		}
	})
}

func TestMaxDuration(t *testing.T) {
	durations := []time.Duration{
		40 * time.Millisecond,
		900 * time.Millisecond,
		5 * time.Millisecond,
	}
	runGroup(t, 3, func(c *Comm) {
		got := c.MaxDuration(durations[c.Rank()])
		if c.IsRoot() {
			if got != 900*time.Millisecond {
				t.Errorf("max duration = %v, want 900ms", got)
			}
		} else if got != 0 {
			t.Errorf("rank %d: non-root reduction returned %v, want 0", c.Rank(), got)
		}
	})
}

func TestSingleRankGroup(t *testing.T) {
	runGroup(t, 1, func(c *Comm) {
		if !c.IsRoot() {
			t.Error("sole rank must be root")
		}
		buf, layout := c.GatherV([]byte("solo"))
		if string(buf) != "solo" || layout.Total != 4 {
			t.Errorf("GatherV on single rank: buf=%q total=%d", buf, layout.Total)
		}
		if got := c.Bcast([]byte("x")); string(got) != "x" {
			t.Errorf("Bcast on single rank: %q", got)
		}
		c.Barrier()
		if got := c.MaxDuration(time.Second); got != time.Second {
			t.Errorf("MaxDuration on single rank: %v", got)
		}
	})
}

func TestCommRankPanicsOutOfRange(t *testing.T) {
	group, err := NewGroup(2)
	if err != nil {
		t.Fatal(err)
	}
	defer group.Close()
	defer func() {
		if recover() == nil {
			t.Error("Comm(2) on a 2-rank group did not panic")
		}
	}()
	group.Comm(2)
}

func TestEncodeDecodeInt32s(t *testing.T) {
	vals := []int{0, 1, 42, 100000, 2147483647}
	got := DecodeInt32s(EncodeInt32s(vals))
	if !reflect.DeepEqual(got, vals) {
		t.Errorf("round trip = %v, want %v", got, vals)
	}
	if len(EncodeInt32s(nil)) != 0 {
		t.Error("encoding no ints should yield no bytes")
	}
}

func TestLayoutScale(t *testing.T) {
	layout := NewLayout([]int{2, 0, 3})
	scaled := layout.Scale(8)
	if !reflect.DeepEqual(scaled.Counts, []int{16, 0, 24}) {
		t.Errorf("scaled counts = %v", scaled.Counts)
	}
	if !reflect.DeepEqual(scaled.Offsets, []int{0, 16, 16}) {
		t.Errorf("scaled offsets = %v", scaled.Offsets)
	}
	if scaled.Total != 40 {
		t.Errorf("scaled total = %d, want 40", scaled.Total)
	}
}

// Successive collectives of different kinds must not interfere even when
// ranks progress at different speeds.
func TestMixedCollectiveSequence(t *testing.T) {
	runGroup(t, 4, func(c *Comm) {
		for round := 0; round < 10; round++ {
			payload := fmt.Appendf(nil, "r%d-%d", c.Rank(), round)
			buf, layout := c.GatherV(payload)
			var echo []byte
			if c.IsRoot() {
				echo = layout.Slice(buf, 3)
			}
			got := c.Bcast(echo)
			want := fmt.Sprintf("r3-%d", round)
			if string(got) != want {
				t.Errorf("rank %d round %d: got %q, want %q", c.Rank(), round, got, want)
			}
			c.Barrier()
		}
	})
}
