package engine

import (
	"sync/atomic"

	"github.com/bbluecircles/jsoncompressor/errs"
)

// handleTracker counts handles that were handed out and not yet released.
type handleTracker struct {
	outstanding atomic.Int64
	metrics     *Metrics
}

func (t *handleTracker) acquire() {
	n := t.outstanding.Add(1)
	t.metrics.setOutstanding(n)
}

func (t *handleTracker) release() {
	n := t.outstanding.Add(-1)
	t.metrics.setOutstanding(n)
}

func (t *handleTracker) count() int64 {
	return t.outstanding.Load()
}

// handle is the ownership state shared by Bytes and Text.
type handle struct {
	tracker  *handleTracker
	released atomic.Bool
}

func (h *handle) isReleased() bool {
	return h.released.Load()
}

func (h *handle) markReleased() error {
	if !h.released.CompareAndSwap(false, true) {
		return errs.ErrReleased
	}
	if h.tracker != nil {
		h.tracker.release()
	}

	return nil
}

// Bytes is an engine-produced byte result owned by the caller until Release.
//
// A Bytes handle must not be used concurrently with its own Release.
type Bytes struct {
	handle
	data []byte
}

func newBytes(tracker *handleTracker, data []byte) *Bytes {
	if tracker != nil {
		tracker.acquire()
	}

	return &Bytes{handle: handle{tracker: tracker}, data: data}
}

// Bytes returns the data, or nil once the handle is released.
func (b *Bytes) Bytes() []byte {
	if b == nil || b.isReleased() {
		return nil
	}

	return b.data
}

// Len returns the length of the data, or 0 once released.
func (b *Bytes) Len() int {
	return len(b.Bytes())
}

// Released reports whether Release was called.
func (b *Bytes) Released() bool {
	return b != nil && b.isReleased()
}

// Release hands the data back to the engine. A second call returns errs.ErrReleased.
func (b *Bytes) Release() error {
	if b == nil {
		return errs.ErrReleased
	}
	if err := b.markReleased(); err != nil {
		return err
	}
	b.data = nil

	return nil
}

// Text is an engine-produced text result owned by the caller until Release.
//
// A Text handle must not be used concurrently with its own Release.
type Text struct {
	handle
	text string
}

func newText(tracker *handleTracker, text string) *Text {
	if tracker != nil {
		tracker.acquire()
	}

	return &Text{handle: handle{tracker: tracker}, text: text}
}

// String returns the text, or "" once the handle is released.
func (t *Text) String() string {
	if t == nil || t.isReleased() {
		return ""
	}

	return t.text
}

// Len returns the length of the text in bytes, or 0 once released.
func (t *Text) Len() int {
	return len(t.String())
}

// Released reports whether Release was called.
func (t *Text) Released() bool {
	return t != nil && t.isReleased()
}

// Release hands the text back to the engine. A second call returns errs.ErrReleased.
func (t *Text) Release() error {
	if t == nil {
		return errs.ErrReleased
	}
	if err := t.markReleased(); err != nil {
		return err
	}
	t.text = ""

	return nil
}
