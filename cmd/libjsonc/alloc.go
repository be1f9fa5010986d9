package main

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/bbluecircles/jsoncompressor/errs"
)

// allocator provides memory that outlives the Go call returning it.
type allocator interface {
	alloc(n int) unsafe.Pointer
	free(p unsafe.Pointer)
}

type allocKind uint8

const (
	kindBytes allocKind = iota + 1
	kindText
)

func (k allocKind) String() string {
	if k == kindText {
		return "text"
	}

	return "bytes"
}

type allocation struct {
	kind allocKind
	len  int
	cap  int
}

// allocTable tracks live allocations handed across the boundary.
type allocTable struct {
	mu    sync.Mutex
	mem   allocator
	live  map[unsafe.Pointer]allocation
	bytes int
}

func newAllocTable(mem allocator) *allocTable {
	return &allocTable{
		mem:  mem,
		live: make(map[unsafe.Pointer]allocation),
	}
}

// putBytes copies data into a new allocation. Empty data still gets a
// one-byte allocation so that the returned pointer is never nil.
func (t *allocTable) putBytes(data []byte) (unsafe.Pointer, int, int) {
	capacity := max(len(data), 1)
	p := t.mem.alloc(capacity)
	copy(unsafe.Slice((*byte)(p), capacity), data)

	t.track(p, allocation{kind: kindBytes, len: len(data), cap: capacity})

	return p, len(data), capacity
}

// putText copies s into a new NUL-terminated allocation.
func (t *allocTable) putText(s string) unsafe.Pointer {
	p := t.mem.alloc(len(s) + 1)
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0

	t.track(p, allocation{kind: kindText, len: len(s), cap: len(s) + 1})

	return p
}

func (t *allocTable) track(p unsafe.Pointer, a allocation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.live[p] = a
	t.bytes += a.cap
}

// releaseBytes frees a bytes allocation if (p, n, capacity) matches it exactly.
func (t *allocTable) releaseBytes(p unsafe.Pointer, n, capacity int) error {
	return t.release(p, func(a allocation) bool {
		return a.kind == kindBytes && a.len == n && a.cap == capacity
	})
}

// releaseText frees a text allocation.
func (t *allocTable) releaseText(p unsafe.Pointer) error {
	return t.release(p, func(a allocation) bool {
		return a.kind == kindText
	})
}

func (t *allocTable) release(p unsafe.Pointer, match func(allocation) bool) error {
	if p == nil {
		return fmt.Errorf("%w: nil pointer", errs.ErrHandleMismatch)
	}

	t.mu.Lock()
	a, ok := t.live[p]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %p is not a live allocation", errs.ErrHandleMismatch, p)
	}
	if !match(a) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %p is %s len=%d cap=%d", errs.ErrHandleMismatch, p, a.kind, a.len, a.cap)
	}
	delete(t.live, p)
	t.bytes -= a.cap
	t.mu.Unlock()

	t.mem.free(p)

	return nil
}

// stats returns the number of live allocations and their total capacity.
func (t *allocTable) stats() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.live), t.bytes
}
