package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhackett1/OptSimple/internal/fsutil"
	"github.com/bhackett1/OptSimple/internal/store"
)

func testVertices(n int) []store.Vertex {
	out := make([]store.Vertex, n)
	for i := range out {
		f := float64(i) / float64(n)
		out[i] = store.Vertex{RunID: "r", EventID: i, Particle: "gamma", Energy: 1,
			Phi: f * 3, Height: -500 + 1000*f, U: f, X: 500 * f, Y: 250 * f, Z: -500 + 1000*f}
	}
	return out
}

func TestHistograms(t *testing.T) {
	mem := fsutil.NewMemoryFileSystem()
	dir := filepath.Join("out", "plots")
	paths, err := Histograms(mem, testVertices(200), dir, 0)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "vertex_x.png"), paths[0])
	assert.ElementsMatch(t, paths, mem.Files())

	for _, p := range paths {
		data, err := mem.ReadFile(p)
		require.NoError(t, err)
		_, err = png.DecodeConfig(bytes.NewReader(data))
		assert.NoError(t, err, "%s must be a PNG", p)
	}
}

func TestHistograms_OSFileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	paths, err := Histograms(fsutil.OSFileSystem{}, testVertices(20), dir, 5)
	require.NoError(t, err)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestHistograms_Errors(t *testing.T) {
	mem := fsutil.NewMemoryFileSystem()
	_, err := Histograms(mem, nil, "out", 10)
	assert.ErrorIs(t, err, ErrNoVertices)

	mem.AddFile("out", []byte("not a dir"))
	_, err = Histograms(mem, testVertices(3), "out", 10)
	assert.Error(t, err)
}

func TestScatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, "run-1", testVertices(50)))
	html := buf.String()
	assert.Contains(t, html, "Primary vertices")
	assert.Contains(t, html, "run=run-1 points=50 stride=1")

	assert.ErrorIs(t, Scatter(&buf, "x", nil), ErrNoVertices)
}

func TestScatter_Strides(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, "big", testVertices(MaxScatterPoints*2+1)))
	assert.Contains(t, buf.String(), "stride=3")
}

func TestWriteScatter(t *testing.T) {
	mem := fsutil.NewMemoryFileSystem()
	require.NoError(t, WriteScatter(mem, "vertices.html", "r", testVertices(10)))
	data, err := mem.ReadFile("vertices.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), "run=r points=10")

	assert.Error(t, WriteScatter(mem, filepath.Join("missing", "x.html"), "r", testVertices(1)))
}
