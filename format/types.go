package format

import (
	"fmt"
	"strings"

	"github.com/bbluecircles/jsoncompressor/errs"
)

// CompressionType identifies the framing used for compressed chunks.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip (RFC 1952) framing.
	CompressionZlib CompressionType = 0x3 // CompressionZlib represents zlib (RFC 1950) framing.
	CompressionZstd CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x5 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x6 // CompressionLZ4 represents LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("gzip", "zstd", ...) to its CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zlib":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}
