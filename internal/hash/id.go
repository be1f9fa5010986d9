package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ChecksumString computes the xxHash64 of s without copying it.
func ChecksumString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Digest accumulates an xxHash64 over data written in pieces, such as
// chunks pulled from a staged output.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the running hash. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the hash of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
