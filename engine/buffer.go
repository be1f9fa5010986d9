package engine

import (
	"sync"

	"github.com/bbluecircles/jsoncompressor/record"
)

// Buffer accumulates parsed records across ingestion calls.
//
// Every method holds the buffer lock for its full duration, so a concurrent
// caller observes the contents either before or after an Append or Replace,
// never a partial interleave.
type Buffer struct {
	mu      sync.Mutex
	records record.Sequence
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{records: record.Sequence{}}
}

// Append adds seq to the tail of the buffer in arrival order.
func (b *Buffer) Append(seq record.Sequence) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, seq...)
}

// Snapshot returns a copy of the current contents.
func (b *Buffer) Snapshot() record.Sequence {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.records.Clone()
}

// Replace swaps the buffer contents for seq. The buffer keeps its own copy.
func (b *Buffer) Replace(seq record.Sequence) {
	next := seq.Clone()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = next
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.records)
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = record.Sequence{}
}
