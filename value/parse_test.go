package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	cases := []struct {
		kind Kind
		in   string
		want Value
	}{
		{KindBool, "on", Bool(true)},
		{KindBool, " N ", Bool(false)},
		{KindInt, " -12", Int(-12)},
		{KindUint, "12", Uint(12)},
		{KindFloat, "12.5", Float(12.5)},
		{KindString, " keep spaces ", String(" keep spaces ")},
		{KindNone, "", None()},
	}
	for _, tc := range cases {
		got, err := Parse(tc.kind, tc.in)
		require.NoError(t, err, "Parse(%s, %q)", tc.kind, tc.in)
		assert.True(t, Equal(tc.want, got), "Parse(%s, %q) = %v", tc.kind, tc.in, got)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		kind Kind
		in   string
	}{
		{KindBool, "maybe"},
		{KindInt, "1.5"},
		{KindUint, "-1"},
		{KindFloat, "NaN"},
		{KindFloat, "+Inf"},
		{KindAction, "x"},
		{KindArray, "{a: 1}"},
		{KindDict, "[1]"},
	}
	for _, tc := range cases {
		_, err := Parse(tc.kind, tc.in)
		assert.ErrorIs(t, err, ErrTypeMismatch, "Parse(%s, %q)", tc.kind, tc.in)
	}
}

func TestParseCollections(t *testing.T) {
	a, err := Parse(KindArray, "[fast, slow]")
	require.NoError(t, err)
	assert.True(t, Equal(Array(String("fast"), String("slow")), a))

	d, err := Parse(KindDict, "{name: prod}")
	require.NoError(t, err)
	assert.True(t, Equal(Dict(map[string]Value{"name": String("prod")}), d))
}
