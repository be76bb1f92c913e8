// Package replay implements the two FIFO bounded buffers the trainer
// samples from: a buffer of DQN transitions and a buffer of RND-encoded
// state vectors. Both evict the oldest entry on overflow and sample
// uniformly with replacement.
package replay

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Transition is one (state, action, reward, next_state, done) tuple.
type Transition struct {
	State     []float64
	Action    int
	Reward    float64
	NextState []float64
	Done      bool
}

// TransitionBuffer is a fixed-capacity FIFO queue of Transitions.
type TransitionBuffer struct {
	mu       sync.Mutex
	capacity int
	entries  []Transition
}

// NewTransitionBuffer builds an empty buffer with the given capacity.
func NewTransitionBuffer(capacity int) *TransitionBuffer {
	return &TransitionBuffer{capacity: capacity, entries: make([]Transition, 0, capacity)}
}

// Push appends t, evicting the oldest entry first if the buffer is full.
func (b *TransitionBuffer) Push(t Transition) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) >= b.capacity {
		b.entries = b.entries[1:]
	}
	b.entries = append(b.entries, t)
}

// Len returns the current number of entries.
func (b *TransitionBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Sample draws batchSize transitions uniformly with replacement. Fails if
// the buffer holds fewer than batchSize entries.
func (b *TransitionBuffer) Sample(batchSize int, rng *rand.Rand) ([]Transition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) < batchSize {
		return nil, fmt.Errorf("replay: sample requested %d but buffer holds %d", batchSize, len(b.entries))
	}
	out := make([]Transition, batchSize)
	for i := range out {
		out[i] = b.entries[rng.IntN(len(b.entries))]
	}
	return out, nil
}
