package tone

import "sync"

// Ring is a fixed-capacity circular buffer of samples. A sink's output
// path writes into it as samples leave for the device; the UI reads
// the most recent window to draw a waveform. Writes and reads may come
// from different goroutines.
type Ring struct {
	mu      sync.RWMutex
	samples []int16
	head    int // next write position
	count   int // valid samples, up to capacity
}

func NewRing(capacity int) *Ring {
	return &Ring{samples: make([]int16, capacity)}
}

// Write appends samples, overwriting the oldest when full. A batch
// larger than the capacity keeps only its tail.
func (r *Ring) Write(samples []int16) {
	if len(samples) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.samples)
	if capacity == 0 {
		return
	}
	if len(samples) > capacity {
		samples = samples[len(samples)-capacity:]
	}

	// At most two copies: up to the end of the buffer, then wrapped.
	n := copy(r.samples[r.head:], samples)
	copy(r.samples, samples[n:])

	r.head = (r.head + len(samples)) % capacity
	r.count = min(r.count+len(samples), capacity)
}

// Recent returns up to n of the newest samples in chronological order,
// fewer when the buffer holds less.
func (r *Ring) Recent(n int) []int16 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || r.count == 0 {
		return nil
	}
	n = min(n, r.count)

	capacity := len(r.samples)
	start := (r.head - n + capacity) % capacity

	out := make([]int16, n)
	m := copy(out, r.samples[start:min(start+n, capacity)])
	copy(out[m:], r.samples)

	return out
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Clear drops everything, typically on transport stop.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.count = 0
}
