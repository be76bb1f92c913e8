package replay

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RNDBuffer is a fixed-capacity FIFO queue of fixed-width f64 vectors (the
// RND-encoded state), with the same eviction and sampling semantics as
// TransitionBuffer.
type RNDBuffer struct {
	mu       sync.Mutex
	capacity int
	width    int
	entries  [][]float64
}

// NewRNDBuffer builds an empty buffer for vectors of the given width.
func NewRNDBuffer(capacity, width int) *RNDBuffer {
	return &RNDBuffer{capacity: capacity, width: width, entries: make([][]float64, 0, capacity)}
}

// Push appends vec, evicting the oldest entry first if the buffer is full.
// Panics if vec's length doesn't match the configured width.
func (b *RNDBuffer) Push(vec []float64) {
	if len(vec) != b.width {
		panic(fmt.Sprintf("replay: RND vector width %d does not match configured %d", len(vec), b.width))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) >= b.capacity {
		b.entries = b.entries[1:]
	}
	b.entries = append(b.entries, vec)
}

// Len returns the current number of entries.
func (b *RNDBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// GetBatch returns a contiguous column-major [width, k] block sampled
// uniformly with replacement. Because column-major [width, k] is
// byte-identical to k vectors concatenated in row order, this is a
// straight concatenation of k sampled vectors. Fails if length < k.
func (b *RNDBuffer) GetBatch(k int, rng *rand.Rand) ([]float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) < k {
		return nil, fmt.Errorf("replay: get_batch requested %d but buffer holds %d", k, len(b.entries))
	}
	out := make([]float64, 0, k*b.width)
	for i := 0; i < k; i++ {
		out = append(out, b.entries[rng.IntN(len(b.entries))]...)
	}
	return out, nil
}
