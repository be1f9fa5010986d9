package pool

import (
	"bytes"
	"io"
	"sync"
)

const (
	CodecBufferDefaultSize  = 1024 * 64        // 64KiB
	CodecBufferMaxThreshold = 1024 * 1024 * 4  // 4MiB
	StageBufferDefaultSize  = 1024 * 256       // 256KiB
	StageBufferMaxThreshold = 1024 * 1024 * 32 // 32MiB

	minReadSize = 512
)

// ByteBuffer is a growable scratch buffer handed out by a ByteBufferPool.
//
// Buffers obtained from a pool must not be retained after Put; use Clone to
// keep the contents.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Clone returns a copy of the buffer contents that is safe to keep after the
// buffer goes back to its pool.
func (bb *ByteBuffer) Clone() []byte {
	return bytes.Clone(bb.B)
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by at least CodecBufferDefaultSize; larger ones grow by
// 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := CodecBufferDefaultSize
	if cap(bb.B) > 4*CodecBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteString appends s to the buffer.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// ReadFrom appends everything read from r until io.EOF.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		bb.Grow(minReadSize)
		n, err := r.Read(bb.B[len(bb.B):cap(bb.B)])
		if n < 0 {
			panic("ByteBuffer.ReadFrom: reader returned negative count")
		}
		bb.B = bb.B[:len(bb.B)+n]
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers larger than maxThreshold are dropped on Put to keep one oversized
// payload from pinning memory for the lifetime of the process.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	codecDefaultPool = NewByteBufferPool(CodecBufferDefaultSize, CodecBufferMaxThreshold)
	stageDefaultPool = NewByteBufferPool(StageBufferDefaultSize, StageBufferMaxThreshold)
)

// GetCodecBuffer retrieves a ByteBuffer used by codecs for compressed or decompressed output.
func GetCodecBuffer() *ByteBuffer {
	return codecDefaultPool.Get()
}

// PutCodecBuffer returns a ByteBuffer to the codec pool.
func PutCodecBuffer(bb *ByteBuffer) {
	codecDefaultPool.Put(bb)
}

// GetStageBuffer retrieves a ByteBuffer used to serialize staged output.
func GetStageBuffer() *ByteBuffer {
	return stageDefaultPool.Get()
}

// PutStageBuffer returns a ByteBuffer to the stage pool.
func PutStageBuffer(bb *ByteBuffer) {
	stageDefaultPool.Put(bb)
}
