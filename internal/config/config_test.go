package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundplane/webrag/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sources/sources.csv", cfg.SourcesCSV)
	assert.Equal(t, "corpus/chunks.jsonl", cfg.ChunksPath)
	assert.Equal(t, DefaultTargetWords, cfg.TargetWords)
	assert.Equal(t, DefaultMaxWords, cfg.MaxWords)
	assert.Equal(t, DefaultOverlapWords, cfg.OverlapWords)
	assert.Equal(t, 80, cfg.MinSectionChars)
	assert.Equal(t, 8, cfg.TopK)
	assert.Equal(t, "openai", cfg.EmbedProvider)
	assert.Equal(t, 64, cfg.EmbedBatchSize)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webrag.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
target_words = 200
max_words = 300
overlap_words = 40
top_k = 5
chunks_path = "out/chunks.jsonl"
junk_heading_patterns = ["\\bnav\\b"]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.TargetWords)
	assert.Equal(t, 300, cfg.MaxWords)
	assert.Equal(t, 40, cfg.OverlapWords)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, "out/chunks.jsonl", cfg.ChunksPath)
	assert.Equal(t, []string{`\bnav\b`}, cfg.JunkHeadingPatterns)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	// Keys set in the file must survive env.Parse when their variables
	// are unset; untouched keys keep their defaults.
	path := filepath.Join(t.TempDir(), "webrag.toml")
	require.NoError(t, os.WriteFile(path, []byte("target_words = 120\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.TargetWords)
	assert.Equal(t, DefaultMaxWords, cfg.MaxWords)
	assert.Equal(t, "corpus/chunks.jsonl", cfg.ChunksPath)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("CHUNKS_PATH", "elsewhere/chunks.jsonl")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "elsewhere/chunks.jsonl", cfg.ChunksPath)
	assert.Equal(t, "corpus/index.bin", cfg.IndexPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webrag.toml")
	require.NoError(t, os.WriteFile(path, []byte("top_k = 5\n"), 0o644))

	t.Setenv("TOP_K", "3")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopK)
}

func TestLoad_MissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{TargetWords: 350, MaxWords: 500, OverlapWords: 60, TopK: 8}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("overlap at target", func(t *testing.T) {
		c := valid()
		c.OverlapWords = c.TargetWords
		assert.ErrorIs(t, c.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("target above max", func(t *testing.T) {
		c := valid()
		c.TargetWords = c.MaxWords + 1
		assert.ErrorIs(t, c.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("non-positive sizes", func(t *testing.T) {
		c := valid()
		c.MaxWords = 0
		assert.ErrorIs(t, c.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("negative section floor", func(t *testing.T) {
		c := valid()
		c.MinSectionChars = -1
		assert.ErrorIs(t, c.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("zero top k", func(t *testing.T) {
		c := valid()
		c.TopK = 0
		assert.ErrorIs(t, c.Validate(), domain.ErrInvalidConfig)
	})
}
