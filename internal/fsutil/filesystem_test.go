package fsutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_CreateNeedsParent(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.Create("out/a.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, m.MkdirAll("out/plots", 0755))
	w, err := m.Create("out/plots/a.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)

	_, err = m.ReadFile("out/plots/a.txt")
	require.NoError(t, err, "file exists before close")
	require.NoError(t, w.Close())

	data, err := m.ReadFile("out/plots/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, []string{filepath.Clean("out/plots/a.txt")}, m.Files())
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("mesh/Capsule.stl", []byte("solid"))

	info, err := m.Stat("mesh/Capsule.stl")
	require.NoError(t, err)
	assert.Equal(t, "Capsule.stl", info.Name())
	assert.Equal(t, int64(5), info.Size())
	assert.False(t, info.IsDir())

	info, err = m.Stat("mesh")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, info.Mode().IsDir())

	_, err = m.Stat("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_MkdirAllOverFile(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("report", []byte("x"))
	assert.ErrorIs(t, m.MkdirAll("report/plots", 0755), fs.ErrExist)

	_, err := m.Create("mesh")
	assert.NoError(t, err)
	require.NoError(t, m.MkdirAll("dir", 0755))
	_, err = m.Create("dir")
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestOSFileSystem(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	path := filepath.Join(dir, "f.txt")
	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())
}
