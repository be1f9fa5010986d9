package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/bbluecircles/jsoncompressor/internal/hash"
	"github.com/bbluecircles/jsoncompressor/internal/pool"
	"github.com/bbluecircles/jsoncompressor/record"
)

// CursorMode selects how Next advances the read cursor.
type CursorMode uint8

const (
	// CursorAdvanceCopied advances the cursor by the number of bytes copied.
	// Repeated Next calls reconstruct the staged text exactly.
	CursorAdvanceCopied CursorMode = iota

	// CursorAdvanceRequested advances the cursor by the requested length even
	// when fewer bytes remained. Kept for hosts that depend on the legacy
	// cursor position.
	CursorAdvanceRequested
)

func (m CursorMode) String() string {
	switch m {
	case CursorAdvanceCopied:
		return "copied"
	case CursorAdvanceRequested:
		return "requested"
	default:
		return "unknown"
	}
}

// ParseCursorMode parses a cursor mode name as produced by String.
func ParseCursorMode(name string) (CursorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "copied":
		return CursorAdvanceCopied, nil
	case "requested", "legacy":
		return CursorAdvanceRequested, nil
	default:
		return 0, fmt.Errorf("unknown cursor mode %q", name)
	}
}

// StagedInfo describes the currently staged output.
type StagedInfo struct {
	// Staged reports whether any output is staged.
	Staged bool
	// Size is the length of the staged text in bytes.
	Size int
	// Cursor is the current read position. In CursorAdvanceRequested mode it
	// may exceed Size.
	Cursor int
	// Checksum is the xxHash64 of the staged text.
	Checksum uint64
}

// Remaining returns the number of bytes not yet extracted.
func (i StagedInfo) Remaining() int {
	if i.Cursor >= i.Size {
		return 0
	}

	return i.Size - i.Cursor
}

// Stager caches the serialized output of one cycle and hands it out in
// bounded chunks.
type Stager struct {
	mu       sync.Mutex
	mode     CursorMode
	text     []byte
	staged   bool
	cursor   int
	checksum uint64
}

// NewStager creates a Stager using the given cursor mode.
func NewStager(mode CursorMode) *Stager {
	return &Stager{mode: mode}
}

// Stage serializes seq once and caches the text with the cursor at 0.
// Staging again overwrites the previous text.
func (s *Stager) Stage(seq record.Sequence) StagedInfo {
	buf := pool.GetStageBuffer()
	buf.Grow(seq.EncodedLen())
	buf.B = seq.AppendJSON(buf.B)
	text := buf.Clone()
	pool.PutStageBuffer(buf)

	checksum := hash.Checksum(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	s.staged = true
	s.cursor = 0
	s.checksum = checksum

	return s.infoLocked()
}

// Next copies up to maxLen bytes of staged text starting at the cursor.
//
// It returns (nil, false) when nothing is staged, when the cursor is at or
// past the end, or when maxLen is not positive. Otherwise it returns a
// caller-owned chunk and true.
func (s *Stager) Next(maxLen int) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.staged || s.cursor >= len(s.text) || maxLen <= 0 {
		return nil, false
	}

	n := min(maxLen, len(s.text)-s.cursor)
	chunk := make([]byte, n)
	copy(chunk, s.text[s.cursor:s.cursor+n])

	switch s.mode {
	case CursorAdvanceRequested:
		// Saturate so a huge request cannot wrap the cursor negative.
		if maxLen > math.MaxInt-s.cursor {
			s.cursor = math.MaxInt
		} else {
			s.cursor += maxLen
		}
	default:
		s.cursor += n
	}

	return chunk, true
}

// Finalize clears the staged text and resets the cursor. Calling it when
// nothing is staged is a no-op.
func (s *Stager) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = nil
	s.staged = false
	s.cursor = 0
	s.checksum = 0
}

// Info returns a description of the staged output.
func (s *Stager) Info() StagedInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.infoLocked()
}

func (s *Stager) infoLocked() StagedInfo {
	return StagedInfo{
		Staged:   s.staged,
		Size:     len(s.text),
		Cursor:   s.cursor,
		Checksum: s.checksum,
	}
}
