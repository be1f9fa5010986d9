// Package jsoncompressor compresses JSON array payloads and runs declarative
// sort and filter actions over them in a chunked ingest, act, extract cycle.
//
// # Basic Usage
//
// One-shot compression helpers use gzip, the default wire codec:
//
//	compressed, _ := jsoncompressor.Compress([]byte(`[{"a":"z"},{"a":"a"}]`))
//	text, _ := jsoncompressor.Decompress(compressed)
//
// Transform decompresses a complete payload, applies one action and returns
// the resulting JSON text:
//
//	out, err := jsoncompressor.Transform(compressed, "sort", []byte(`{"field":"a","dir":"asc"}`))
//	// out == `[{"a":"a"},{"a":"z"}]`
//
// For payloads that arrive in pieces, create an Engine and drive the cycle
// directly:
//
//	eng, _ := jsoncompressor.NewDefault()
//	for _, chunk := range chunks {
//	    if err := eng.IngestChunk(chunk); err != nil {
//	        log.Println(eng.LastError())
//	    }
//	}
//	_ = eng.RunAction("filter", params)
//	for {
//	    out, more := eng.NextOutputChunk(64 * 1024)
//	    if !more {
//	        break
//	    }
//	    w.Write(out.Bytes())
//	    out.Release()
//	}
//	eng.FinalizeOutput()
//
// # Package Structure
//
// This package provides thin wrappers around the engine, compress and
// action packages. Use those packages directly for finer control.
package jsoncompressor

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/bbluecircles/jsoncompressor/compress"
	"github.com/bbluecircles/jsoncompressor/engine"
	"github.com/bbluecircles/jsoncompressor/errs"
	"github.com/bbluecircles/jsoncompressor/format"
)

// transformChunkSize is the extraction chunk size used by Transform.
const transformChunkSize = 64 * 1024

// New creates an engine configured by opts.
//
// Available options:
//   - engine.WithCompression(format.CompressionGzip|Zlib|Zstd|S2|LZ4|None)
//   - engine.WithCodec(codec)
//   - engine.WithCursorMode(engine.CursorAdvanceCopied|CursorAdvanceRequested)
//   - engine.WithLogger(logger)
//   - engine.WithMetrics(registerer)
func New(opts ...engine.Option) (*engine.Engine, error) {
	return engine.New(opts...)
}

// NewDefault creates an engine with gzip chunks, copied-byte cursor advance,
// a discard logger and no metrics.
func NewDefault() (*engine.Engine, error) {
	return engine.New()
}

// Compress gzip-compresses data.
func Compress(data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(format.CompressionGzip)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}

// Decompress gunzips data and returns it as text. Malformed framing and
// non-UTF-8 output fail with errs.ErrDecode.
func Decompress(data []byte) (string, error) {
	codec, err := compress.GetCodec(format.CompressionGzip)
	if err != nil {
		return "", err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: decompressed data is not valid UTF-8", errs.ErrDecode)
	}

	return string(out), nil
}

// Transform decompresses one complete gzip payload, applies the named action
// and returns the serialized result. An unknown action returns the records
// unchanged.
func Transform(compressed []byte, name string, params []byte, opts ...engine.Option) (string, error) {
	eng, err := engine.New(opts...)
	if err != nil {
		return "", err
	}

	if err := eng.IngestChunk(compressed); err != nil {
		return "", err
	}
	if err := eng.RunAction(name, params); err != nil {
		return "", err
	}
	defer eng.FinalizeOutput()

	var out bytes.Buffer
	out.Grow(eng.OutputInfo().Size)
	for {
		chunk, more := eng.NextOutputChunk(transformChunkSize)
		if !more {
			break
		}
		out.Write(chunk.Bytes())
		_ = chunk.Release()
	}

	return out.String(), nil
}
