package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4MaxDecodedSize bounds the length header accepted by Decompress.
const lz4MaxDecodedSize = 1 << 30

var errLZ4Header = errors.New("invalid length header")

var lz4Pool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor frames data as a uvarint decoded length followed by one LZ4
// block. The header lets Decompress allocate the output exactly once and
// reject blocks that decode to the wrong size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress returns nil for empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	hdr := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4Pool.Get().(*lz4.Compressor)
	defer lz4Pool.Put(lc)

	n, err := lc.CompressBlock(data, dst[hdr:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:hdr+n], nil
}

// Decompress returns nil for empty input. A bad header, a corrupt block or a
// block whose decoded size differs from the header wraps errs.ErrDecode.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, hdr := binary.Uvarint(data)
	if hdr <= 0 || size == 0 || size > lz4MaxDecodedSize {
		return nil, decodeError("lz4", errLZ4Header)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[hdr:], out)
	if err != nil {
		return nil, decodeError("lz4", err)
	}
	if uint64(n) != size {
		return nil, decodeError("lz4", fmt.Errorf("decoded %d bytes, header says %d", n, size))
	}

	return out, nil
}
