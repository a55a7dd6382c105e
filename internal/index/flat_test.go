package index

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundplane/webrag/internal/core/domain"
)

func TestNew(t *testing.T) {
	f, err := New(384)
	require.NoError(t, err)
	assert.Equal(t, 384, f.Dim())
	assert.Equal(t, 0, f.Len())

	_, err = New(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd(t *testing.T) {
	f, err := New(3)
	require.NoError(t, err)

	require.NoError(t, f.Add([][]float32{{1, 0, 0}, {0, 1, 0}}))
	assert.Equal(t, 2, f.Len())

	err = f.Add([][]float32{{1, 0}})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	// A rejected batch must not be partially applied.
	assert.Equal(t, 2, f.Len())
}

func TestSearch(t *testing.T) {
	f, err := New(2)
	require.NoError(t, err)
	require.NoError(t, f.Add([][]float32{
		{1, 0},  // id 0
		{0, 1},  // id 1
		{-1, 0}, // id 2
	}))

	t.Run("ordered by score descending", func(t *testing.T) {
		got, err := f.Search([]float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 0, got[0].ID)
		assert.InDelta(t, 1.0, got[0].Score, 1e-6)
		assert.Equal(t, 1, got[1].ID)
		assert.Equal(t, 2, got[2].ID)
		assert.InDelta(t, -1.0, got[2].Score, 1e-6)
	})

	t.Run("k caps the result length", func(t *testing.T) {
		got, err := f.Search([]float32{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].ID)
	})

	t.Run("k beyond size returns everything", func(t *testing.T) {
		got, err := f.Search([]float32{1, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("ties break on lower id", func(t *testing.T) {
		g, err := New(2)
		require.NoError(t, err)
		require.NoError(t, g.Add([][]float32{{0, 1}, {1, 0}, {1, 0}}))

		got, err := g.Search([]float32{1, 0}, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 2, got[1].ID)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := f.Search([]float32{1, 0, 0}, 3)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("empty index", func(t *testing.T) {
		g, err := New(2)
		require.NoError(t, err)
		got, err := g.Search([]float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestNormalize(t *testing.T) {
	v := []float32{3, 4}
	Normalize(v)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)

	zero := []float32{0, 0}
	Normalize(zero)
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus", "index.bin")

	f, err := New(3)
	require.NoError(t, err)
	vecs := [][]float32{{0.1, 0.2, 0.3}, {-1, 0.5, 0.25}}
	require.NoError(t, f.Add(vecs))
	require.NoError(t, f.WriteFile(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Dim())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, vecs, got.vectors)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.bin"))
		assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})

	t.Run("wrong magic", func(t *testing.T) {
		path := filepath.Join(dir, "bogus.bin")
		require.NoError(t, os.WriteFile(path, []byte("this is not an index file at all"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})

	t.Run("truncated vectors", func(t *testing.T) {
		path := filepath.Join(dir, "trunc.bin")
		f, err := New(4)
		require.NoError(t, err)
		require.NoError(t, f.Add([][]float32{{1, 2, 3, 4}}))
		require.NoError(t, f.WriteFile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)-4], 0o644))

		_, err = Load(path)
		assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})
}
