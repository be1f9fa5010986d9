package action

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bbluecircles/jsoncompressor/record"
)

func TestSort_Basic(t *testing.T) {
	seq := mustSeq(t, `[{"a":"z"},{"a":"a"},{"a":"m"}]`)

	asc := Sort{SortSpec{Field: "a", Ascending: true}}.Apply(seq)
	require.Equal(t, `[{"a":"a"},{"a":"m"},{"a":"z"}]`, encode(asc))

	desc := Sort{SortSpec{Field: "a", Ascending: false}}.Apply(seq)
	require.Equal(t, `[{"a":"z"},{"a":"m"},{"a":"a"}]`, encode(desc))
}

func TestSort_StableBothDirections(t *testing.T) {
	seq := mustSeq(t, `[
		{"k":"b","id":1},
		{"k":"a","id":2},
		{"k":"b","id":3},
		{"k":"a","id":4},
		{"k":"b","id":5}
	]`)

	asc := Sort{SortSpec{Field: "k", Ascending: true}}.Apply(seq)
	require.Equal(t,
		`[{"k":"a","id":2},{"k":"a","id":4},{"k":"b","id":1},{"k":"b","id":3},{"k":"b","id":5}]`,
		encode(asc))

	desc := Sort{SortSpec{Field: "k", Ascending: false}}.Apply(seq)
	require.Equal(t,
		`[{"k":"b","id":1},{"k":"b","id":3},{"k":"b","id":5},{"k":"a","id":2},{"k":"a","id":4}]`,
		encode(desc), "descending keeps original order among equal keys")
}

func TestSort_MissingAndNonStringAsEmpty(t *testing.T) {
	seq := mustSeq(t, `[{"a":"b"},{"x":1},{"a":5},{"a":"a"},"scalar",{"a":null}]`)

	asc := Sort{SortSpec{Field: "a", Ascending: true}}.Apply(seq)
	require.Equal(t, `[{"x":1},{"a":5},"scalar",{"a":null},{"a":"a"},{"a":"b"}]`, encode(asc))

	desc := Sort{SortSpec{Field: "a", Ascending: false}}.Apply(seq)
	require.Equal(t, `[{"a":"b"},{"a":"a"},{"x":1},{"a":5},"scalar",{"a":null}]`, encode(desc))
}

func TestSort_ByteWiseOrder(t *testing.T) {
	seq := mustSeq(t, `[{"a":"b"},{"a":"B"},{"a":"é"},{"a":"aa"},{"a":"a"}]`)

	asc := Sort{SortSpec{Field: "a", Ascending: true}}.Apply(seq)
	require.Equal(t, `[{"a":"B"},{"a":"a"},{"a":"aa"},{"a":"b"},{"a":"é"}]`, encode(asc))
}

func TestSort_EscapedStringsCompareDecoded(t *testing.T) {
	seq := mustSeq(t, `[{"a":"\u0062"},{"a":"a"},{"a":"c"}]`)

	asc := Sort{SortSpec{Field: "a", Ascending: true}}.Apply(seq)
	require.Equal(t, `[{"a":"a"},{"a":"\u0062"},{"a":"c"}]`, encode(asc), "keys are decoded, literals survive")
}

func TestSort_EmptyAndSingle(t *testing.T) {
	s := Sort{SortSpec{Field: "a", Ascending: true}}

	require.Empty(t, s.Apply(nil))
	require.Equal(t, `[{"a":"x"}]`, encode(s.Apply(mustSeq(t, `[{"a":"x"}]`))))
}

func BenchmarkSort(b *testing.B) {
	seq := make(record.Sequence, 0, 5000)
	for i := range 5000 {
		seq = append(seq, record.MustRaw(fmt.Sprintf(`{"name":"record-%d","id":%d}`, (i*7919)%5000, i)))
	}
	s := Sort{SortSpec{Field: "name", Ascending: true}}

	b.ResetTimer()
	for b.Loop() {
		_ = s.Apply(seq)
	}
}
