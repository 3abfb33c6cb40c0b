package value

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumbers(t *testing.T) {
	i, err := Coerce[int](Float(12.9))
	require.NoError(t, err)
	assert.Equal(t, 12, i, "float to int truncates")

	f, err := Coerce[float64](Int(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	u, err := Coerce[uint8](String("200"))
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u)

	b, err := Coerce[bool](Int(0))
	require.NoError(t, err)
	assert.False(t, b)

	n, err := Coerce[int](Bool(true))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	d, err := Coerce[time.Duration](Int(int64(time.Second)))
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestCoerceOverflowAndMismatch(t *testing.T) {
	_, err := Coerce[int8](Int(300))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Coerce[uint](Int(-1))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Coerce[int](String("fast"))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Coerce[bool](String("maybe"))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Coerce[func()](Int(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Coerce[[]int](Int(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCoerceToStringUsesTextualForm(t *testing.T) {
	s, err := Coerce[string](Float(12.5))
	require.NoError(t, err)
	assert.Equal(t, "12.5", s)

	s, err = Coerce[string](Array(Int(1), Int(2)))
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", s)
}

func TestCoerceCollections(t *testing.T) {
	got, err := Coerce[[]float64](Array(Int(1), Float(2.5)))
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1, 2.5}, got); diff != "" {
		t.Fatalf("slice mismatch (-want +got):\n%s", diff)
	}

	m, err := Coerce[map[string]int](MustOf(map[string]any{"a": 1, "b": "2"}))
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 2}, m); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}

	_, err = Coerce[[]int](Array(String("x")))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCoercePassthrough(t *testing.T) {
	v := Array(Int(1))
	got, err := Coerce[Value](v)
	require.NoError(t, err)
	assert.True(t, Equal(v, got))

	x, err := Coerce[any](Uint(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), x)

	x, err = Coerce[any](None())
	require.NoError(t, err)
	assert.Nil(t, x)

	calls := 0
	fn, err := Coerce[func()](Action(func() { calls++ }))
	require.NoError(t, err)
	fn()
	assert.Equal(t, 1, calls)
}
