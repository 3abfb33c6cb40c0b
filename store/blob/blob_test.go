package blob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, s Store) {
	t.Helper()
	_, ok, err := s.Load("a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save("b", []byte("2")))
	require.NoError(t, s.Save("a", []byte("1")))
	require.NoError(t, s.Save("a", []byte("11")))

	data, ok, err := s.Load("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "11", string(data))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("missing"))
	_, ok, err = s.Load("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemoryZeroValue(t *testing.T) {
	var m Memory
	exercise(t, &m)
}

func TestMemoryCopiesBytes(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Save("k", buf))
	buf[0] = 'x'
	data, _, _ := m.Load("k")
	assert.Equal(t, "abc", string(data))
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweaks.yaml")
	f, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	exercise(t, f)
}

func TestFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweaks.yaml")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Save("tweak:Network/Timeouts/Connect%20Timeout", []byte(`{"kind":"float","value":12.5}`)))
	require.NoError(t, f.Close())

	g, err := OpenFile(path)
	require.NoError(t, err)
	data, ok, err := g.Load("tweak:Network/Timeouts/Connect%20Timeout")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"kind":"float","value":12.5}`, string(data))
}

func TestFileClosed(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "tweaks.yaml"))
	require.NoError(t, err)
	require.NoError(t, f.Save("k", []byte("v")))
	require.NoError(t, f.Close())

	require.ErrorIs(t, f.Save("k", []byte("w")), ErrClosed)
	require.ErrorIs(t, f.Delete("k"), ErrClosed)
	data, ok, err := f.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(data))
}

func TestFileEmptyAndInvalid(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	f, err := OpenFile(empty)
	require.NoError(t, err)
	keys, err := f.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- not\n- a map\n"), 0o600))
	_, err = OpenFile(bad)
	require.Error(t, err)
}
