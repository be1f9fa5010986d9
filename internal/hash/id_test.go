package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChecksumString(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ChecksumString(tt.data))
			assert.Equal(t, tt.id, Checksum([]byte(tt.data)))
		})
	}
}

func TestDigest_MatchesChecksum(t *testing.T) {
	data := randString(1000)

	d := NewDigest()
	for i := 0; i < len(data); i += 37 {
		end := min(i+37, len(data))
		_, _ = d.Write([]byte(data[i:end]))
	}

	assert.Equal(t, ChecksumString(data), d.Sum64())
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkChecksum(b *testing.B) {
	data := []byte(randString(4096))
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		Checksum(data)
	}
}
