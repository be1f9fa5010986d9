package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Kind(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
	}{
		{`null`, KindNull},
		{`true`, KindBool},
		{`false`, KindBool},
		{`-1.5e3`, KindNumber},
		{`0`, KindNumber},
		{`"s"`, KindString},
		{`[1]`, KindArray},
		{`{"a":1}`, KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.kind, MustRaw(tt.text).Kind())
		})
	}

	assert.Equal(t, KindInvalid, Record(nil).Kind())
	assert.Equal(t, "invalid", KindInvalid.String())
}

func TestRaw_Invalid(t *testing.T) {
	_, err := Raw(`{"a":`)
	require.Error(t, err)

	require.Panics(t, func() { MustRaw("nope") })
}

func TestRecord_Field(t *testing.T) {
	r := MustRaw(`{ "a": "z", "n": 12.50, "nested": {"b": [1, 2]}, "dup": 1, "dup": 2 }`)

	v, ok := r.Field("a")
	require.True(t, ok)
	assert.Equal(t, `"z"`, v.String())

	v, ok = r.Field("n")
	require.True(t, ok)
	assert.Equal(t, `12.50`, v.String(), "number literal is preserved")

	v, ok = r.Field("nested")
	require.True(t, ok)
	assert.Equal(t, `{"b":[1,2]}`, v.String())

	v, ok = r.Field("dup")
	require.True(t, ok)
	assert.Equal(t, `2`, v.String(), "last duplicate key wins")

	_, ok = r.Field("missing")
	assert.False(t, ok)

	_, ok = r.Field("A")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestRecord_Members(t *testing.T) {
	members, ok := MustRaw(`{"a":"z","n":1,"dup":1,"dup":2}`).Members()
	require.True(t, ok)
	require.Len(t, members, 3)
	assert.Equal(t, `"z"`, members["a"].String())
	assert.Equal(t, `2`, members["dup"].String())

	members, ok = MustRaw(`{}`).Members()
	require.True(t, ok)
	assert.Empty(t, members)

	for _, text := range []string{`[1]`, `"a"`, `null`} {
		_, ok := MustRaw(text).Members()
		assert.False(t, ok, text)
	}
}

func TestRecord_FieldOnNonObject(t *testing.T) {
	for _, text := range []string{`[{"a":1}]`, `"a"`, `1`, `null`} {
		_, ok := MustRaw(text).Field("a")
		assert.False(t, ok, text)
	}
}

func TestRecord_StringValue(t *testing.T) {
	s, ok := MustRaw(`"café \"quoted\""`).StringValue()
	require.True(t, ok)
	assert.Equal(t, `café "quoted"`, s)

	_, ok = MustRaw(`42`).StringValue()
	assert.False(t, ok)
}

func TestRecord_Text(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"string is quoted", `"red"`, `"red"`},
		{"number literal kept", `1.50`, `1.50`},
		{"big integer kept", `12345678901234567890`, `12345678901234567890`},
		{"bool", `true`, `true`},
		{"null", `null`, `null`},
		{"object keys sorted", `{"b":1,"a":2}`, `{"a":2,"b":1}`},
		{"no html escaping", `"<a&b>"`, `"<a&b>"`},
		{"unicode escapes decoded", `"café"`, `"café"`},
		{"array", `[1, "x", null]`, `[1,"x",null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustRaw(tt.text).Text())
		})
	}

	assert.Equal(t, "null", Record(nil).Text())
}

func TestRecord_MarshalJSON(t *testing.T) {
	b, err := MustRaw(`{"a" : 1}`).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))

	b, err = Record(nil).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}
