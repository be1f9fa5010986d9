package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bbluecircles/jsoncompressor/errs"
)

// Sequence is an ordered collection of records that serializes as a
// top-level JSON array.
type Sequence []Record

// Parse parses text into a Sequence.
//
// The text must be valid JSON whose top-level value is an array; surrounding
// whitespace is allowed, anything else fails with errs.ErrFormat. Element order
// and literals are preserved.
func Parse(text []byte) (Sequence, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, text); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFormat, err)
	}

	top := Record(compact.Bytes())
	if kind := top.Kind(); kind != KindArray {
		return nil, fmt.Errorf("%w: top-level value is %s", errs.ErrFormat, kind)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(compact.Bytes(), &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFormat, err)
	}

	seq := make(Sequence, len(elems))
	for i, e := range elems {
		seq[i] = Record(e)
	}

	return seq, nil
}

// ParseString is Parse for string input.
func ParseString(text string) (Sequence, error) {
	return Parse([]byte(text))
}

// Len returns the number of records.
func (s Sequence) Len() int {
	return len(s)
}

// Clone returns a copy of the sequence. Records are shared, not copied.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return Sequence{}
	}

	out := make(Sequence, len(s))
	copy(out, s)

	return out
}

// EncodedLen returns the exact length of the serialized array.
func (s Sequence) EncodedLen() int {
	n := 2 // brackets
	for i, r := range s {
		if i > 0 {
			n++
		}
		n += len(r.literal())
	}

	return n
}

// AppendJSON appends the serialized array to dst and returns the extended slice.
func (s Sequence) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, r := range s {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, r.literal()...)
	}

	return append(dst, ']')
}

// WriteTo writes the serialized array to w.
func (s Sequence) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.AppendJSON(make([]byte, 0, s.EncodedLen())))
	return int64(n), err
}

// MarshalJSON implements json.Marshaler.
func (s Sequence) MarshalJSON() ([]byte, error) {
	return s.AppendJSON(make([]byte, 0, s.EncodedLen())), nil
}
