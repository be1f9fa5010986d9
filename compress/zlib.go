package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/bbluecircles/jsoncompressor/internal/pool"
)

var zlibWriterPool = sync.Pool{
	New: func() any {
		w, err := zlib.NewWriterLevel(nil, zlib.DefaultCompression)
		if err != nil {
			panic(fmt.Sprintf("failed to create zlib writer for pool: %v", err))
		}
		return w
	},
}

// ZlibCompressor provides zlib (RFC 1950) framing at the default level.
type ZlibCompressor struct{}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a new zlib compressor.
func NewZlibCompressor() ZlibCompressor {
	return ZlibCompressor{}
}

// Compress compresses data into a zlib stream.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	w, _ := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)
	w.Reset(buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	return buf.Clone(), nil
}

// Decompress decompresses a zlib stream. Returns nil for empty input.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError("zlib", err)
	}
	defer r.Close()

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, decodeError("zlib", err)
	}

	return buf.Clone(), nil
}
