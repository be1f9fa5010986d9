// Package compress provides the compression codecs used to frame JSON chunks.
//
// Every chunk handed to the engine is a self-contained compressed payload.
// The engine decompresses it with one of the codecs in this package, parses
// the text and appends the records to its buffer.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **Gzip** (format.CompressionGzip, default)
//
//	codec := compress.NewGzipCompressor()
//	compressed, _ := codec.Compress(data)  // best compression level
//	original, _ := codec.Decompress(compressed)
//
// RFC 1952 framing, interoperable with gzip(1) and browser CompressionStream.
// Concatenated members decompress as one payload.
//
// **Zlib** (format.CompressionZlib)
//
// RFC 1950 framing at the default level.
//
// **Zstandard** (format.CompressionZstd)
//
// Best ratio for large record sets. Pure Go by default; build with
// `-tags gozstd` (cgo required) to use libzstd through valyala/gozstd.
//
// **S2** (format.CompressionS2) and **LZ4** (format.CompressionLZ4)
//
// Block formats with fast decompression. Neither carries a checksum, so some
// corrupted inputs decode into garbage instead of failing; the record parser
// then rejects the text.
//
// **None** (format.CompressionNone)
//
// Pass-through for plain JSON chunks.
//
// # Thread Safety
//
// All codec implementations are stateless values and safe for concurrent
// use. Encoders, writers and decoders are pooled internally.
//
// # Error Handling
//
// Decompression failures wrap errs.ErrDecode together with the underlying
// library error:
//
//	_, err := codec.Decompress(chunk)
//	if errors.Is(err, errs.ErrDecode) {
//	    // malformed framing
//	}
package compress
