package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind is the JSON type of a Record.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Record is one JSON value held as its compact literal text.
//
// Number literals and string escapes are kept exactly as they appeared in the
// input; only insignificant whitespace is removed. Records are immutable once
// parsed and may be shared between sequences.
type Record []byte

// Raw parses a single JSON value into a Record.
func Raw(text string) (Record, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, fmt.Errorf("invalid JSON value: %w", err)
	}

	return Record(buf.Bytes()), nil
}

// MustRaw is like Raw but panics on invalid input. Intended for tests and literals.
func MustRaw(text string) Record {
	r, err := Raw(text)
	if err != nil {
		panic(err)
	}

	return r
}

// Kind reports the JSON type of the record.
func (r Record) Kind() Kind {
	if len(r) == 0 {
		return KindInvalid
	}

	switch r[0] {
	case 'n':
		return KindNull
	case 't', 'f':
		return KindBool
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	default:
		return KindNumber
	}
}

// Bytes returns the literal JSON text of the record.
func (r Record) Bytes() []byte {
	return r
}

// String returns the literal JSON text of the record.
func (r Record) String() string {
	return string(r)
}

// MarshalJSON implements json.Marshaler by emitting the stored literal.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.literal(), nil
}

// literal returns the stored text, substituting null for an empty record.
func (r Record) literal() []byte {
	if len(r) == 0 {
		return []byte("null")
	}

	return r
}

// Members decodes the top-level members of an object record. It returns
// false for non-objects. When an object repeats a key, the last occurrence
// wins.
func (r Record) Members() (map[string]Record, bool) {
	if r.Kind() != KindObject {
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(r, &raw); err != nil {
		return nil, false
	}

	members := make(map[string]Record, len(raw))
	for k, v := range raw {
		members[k] = Record(v)
	}

	return members, true
}

// Field looks up a top-level member of an object record. Callers reading
// several fields of one record should use Members instead.
func (r Record) Field(name string) (Record, bool) {
	members, ok := r.Members()
	if !ok {
		return nil, false
	}

	v, ok := members[name]

	return v, ok
}

// StringValue returns the decoded string if the record is a JSON string.
func (r Record) StringValue() (string, bool) {
	if r.Kind() != KindString {
		return "", false
	}

	var s string
	if err := json.Unmarshal(r, &s); err != nil {
		return "", false
	}

	return s, true
}

// Text returns the canonical textual rendering of the record.
//
// Strings are rendered quoted, object members are sorted by key, number
// literals are kept verbatim and HTML characters are not escaped. Two records
// holding the same value always render to the same text, which makes Text
// suitable for substring matching.
func (r Record) Text() string {
	if len(r) == 0 {
		return "null"
	}

	dec := json.NewDecoder(bytes.NewReader(r))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return string(r)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return string(r)
	}

	return string(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
}
