package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/bbluecircles/jsoncompressor/internal/pool"
)

// gzipWriterPool pools gzip writers at best compression. Writers are Reset
// onto a fresh destination before every use.
var gzipWriterPool = sync.Pool{
	New: func() any {
		w, err := gzip.NewWriterLevel(nil, gzip.BestCompression)
		if err != nil {
			// BestCompression is a valid level
			panic(fmt.Sprintf("failed to create gzip writer for pool: %v", err))
		}
		return w
	},
}

// GzipCompressor provides gzip (RFC 1952) framing at best compression.
//
// This is the default codec of the engine: chunks produced by standard gzip
// tooling decompress without configuration.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses data into a single gzip member.
// An empty input still produces a valid, empty gzip stream.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	w, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)
	w.Reset(buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return buf.Clone(), nil
}

// Decompress decompresses every gzip member in data.
//
// Returns nil for empty input. Bad headers, checksum mismatches, truncated
// members and trailing garbage return an error wrapping errs.ErrDecode.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError("gzip", err)
	}
	defer r.Close()

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, decodeError("gzip", err)
	}

	return buf.Clone(), nil
}
