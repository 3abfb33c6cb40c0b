package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRoundTrip(t *testing.T) {
	for _, v := range []Value{
		None(),
		Bool(true),
		Int(math.MinInt64),
		Uint(math.MaxUint64),
		Float(0.1),
		String("12"),
		String(""),
		String("\t"),
		String("\n"),
		String("\r\n"),
		String("x\t"),
		String("\tx"),
		String("  padded  "),
		String("\"quoted\": yes"),
		Array(String(" "), String("a\tb")),
		MustOf(map[string]any{"a": []any{1, "x", 2.5}, "b": map[string]any{}}),
	} {
		data, err := Marshal(v)
		require.NoError(t, err, "Marshal(%v)", v)
		got, err := Unmarshal(data)
		require.NoError(t, err, "Unmarshal(%q)", data)
		assert.True(t, Equal(v, got), "round trip of %v gave %v", v, got)
	}
}

func TestMarshalKeepsNumericVariant(t *testing.T) {
	// "12" as a string, 12 as an int and 12 as a float must not collapse into one another.
	for _, v := range []Value{String("12"), Int(12), Uint(12), Float(12)} {
		data, err := Marshal(v)
		require.NoError(t, err)
		got, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, v.Kind(), got.Kind())
	}
}

func TestMarshalAction(t *testing.T) {
	_, err := Marshal(Action(func() {}))
	assert.ErrorIs(t, err, ErrNotPersistable)

	_, err = Marshal(Array(Action(func() {})))
	assert.ErrorIs(t, err, ErrNotPersistable)
}

func TestUnmarshalInvalid(t *testing.T) {
	for _, data := range []string{
		"kind: duration\ndata: 1s\n",
		"kind: int\ndata: twelve\n",
		"kind: action\n",
		"kind: string\ndata: unquoted\n",
		"- not\n- an envelope\n",
	} {
		_, err := Unmarshal([]byte(data))
		assert.ErrorIs(t, err, ErrInvalidEncoding, "Unmarshal(%q)", data)
	}
}
