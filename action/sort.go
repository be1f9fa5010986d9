package action

import (
	"slices"
	"strings"

	"github.com/bbluecircles/jsoncompressor/record"
)

// Direction values for the sort "dir" parameter.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// SortSpec orders records by the string value at Field.
type SortSpec struct {
	Field     string
	Ascending bool
}

// Sort is the sort action.
//
// Records are compared by the string at Field using byte-wise lexicographic
// order. A missing field, a non-string value and a non-object record all sort
// as the empty string. The sort is stable in both directions: descending
// reverses the comparison, never the order of equal keys.
type Sort struct {
	SortSpec
}

var _ Action = Sort{}

type sortParams struct {
	Field string
	Dir   *string
}

func decodeSortParams(data []byte) (sortParams, error) {
	var p sortParams
	err := decodeObject(data,
		param{"field", &p.Field},
		param{"dir", &p.Dir},
	)

	return p, err
}

func (p sortParams) action() Sort {
	dir := DirDesc
	if p.Dir != nil {
		dir = *p.Dir
	}

	return Sort{SortSpec{Field: p.Field, Ascending: dir == DirAsc}}
}

// Name implements Action.
func (s Sort) Name() string {
	return NameSort
}

// Apply implements Action.
func (s Sort) Apply(seq record.Sequence) record.Sequence {
	type keyed struct {
		key string
		rec record.Record
	}

	items := make([]keyed, len(seq))
	for i, rec := range seq {
		items[i] = keyed{key: sortKey(rec, s.Field), rec: rec}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		c := strings.Compare(a.key, b.key)
		if !s.Ascending {
			c = -c
		}

		return c
	})

	out := make(record.Sequence, len(items))
	for i, it := range items {
		out[i] = it.rec
	}

	return out
}

func sortKey(rec record.Record, field string) string {
	v, ok := rec.Field(field)
	if !ok {
		return ""
	}

	s, _ := v.StringValue()

	return s
}
