package simulation

import "github.com/santhosh1815/hmi/internal/errors"

// Buffer is a fixed-capacity ring of samples ordered oldest to newest.
// It is always full: construction pre-fills every slot with a seed sample and
// each append evicts exactly the oldest entry. Appends never allocate.
type Buffer struct {
	samples []Sample
	head    int // index of the oldest sample
}

func NewBuffer(capacity int, seed Sample) (*Buffer, error) {
	if capacity <= 0 {
		return nil, errors.New().WithData(ErrInvalidHistorySize, capacity)
	}

	samples := make([]Sample, capacity)
	for i := range samples {
		samples[i] = seed
	}

	return &Buffer{samples: samples}, nil
}

// Append evicts the oldest sample and inserts s at the newest position
func (b *Buffer) Append(s Sample) {
	b.samples[b.head] = s
	b.head = (b.head + 1) % len(b.samples)
}

// Snapshot returns an independent copy of the buffer contents, oldest first.
// Callers never observe later appends through a returned snapshot.
func (b *Buffer) Snapshot() []Sample {
	n := len(b.samples)
	out := make([]Sample, n)
	for i := 0; i < n; i++ {
		out[i] = b.samples[(b.head+i)%n]
	}

	return out
}

// Latest returns the newest sample
func (b *Buffer) Latest() Sample {
	n := len(b.samples)

	return b.samples[(b.head+n-1)%n]
}

// Capacity returns the fixed buffer length
func (b *Buffer) Capacity() int {
	return len(b.samples)
}
