// Package config builds the immutable pipeline configuration.
// Precedence is defaults, then the optional TOML file, then environment
// variables. The resulting Config is constructed once in main and passed
// by reference into every component; nothing reads the environment later.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/textclean"
)

// Chunk sizing defaults, in words. Word counts are a rough token proxy.
const (
	DefaultTargetWords  = 350
	DefaultMaxWords     = 500
	DefaultOverlapWords = 60
)

// Config holds every knob the pipeline recognises. Env tags carry no
// defaults: an unset variable must leave the file layer untouched.
type Config struct {
	// Stores.
	SourcesCSV string `toml:"sources_csv" env:"SOURCES_CSV"`
	RawDir     string `toml:"raw_dir" env:"RAW_DIR"`
	ParsedDir  string `toml:"parsed_dir" env:"PARSED_DIR"`
	ChunksPath string `toml:"chunks_path" env:"CHUNKS_PATH"`
	IndexPath  string `toml:"index_path" env:"INDEX_PATH"`
	MetaPath   string `toml:"meta_path" env:"META_PATH"`
	HistoryDB  string `toml:"history_db" env:"HISTORY_DB"`

	// Chunk sizing.
	TargetWords  int `toml:"target_words" env:"TARGET_WORDS"`
	MaxWords     int `toml:"max_words" env:"MAX_WORDS"`
	OverlapWords int `toml:"overlap_words" env:"OVERLAP_WORDS"`

	// Cleaning heuristics. The thresholds and pattern lists were tuned
	// against one agency's markup; they are configuration, not constants.
	MinSectionChars     int      `toml:"min_section_chars" env:"MIN_SECTION_CHARS"`
	JunkHeadingPatterns []string `toml:"junk_heading_patterns" env:"JUNK_HEADING_PATTERNS" envSeparator:"|"`
	JunkTextPatterns    []string `toml:"junk_text_patterns" env:"JUNK_TEXT_PATTERNS" envSeparator:"|"`

	// Retrieval.
	TopK     int     `toml:"top_k" env:"TOP_K"`
	MinScore float64 `toml:"min_score" env:"MIN_SCORE"`

	// AI providers.
	EmbedProvider  string `toml:"embed_provider" env:"EMBED_PROVIDER"`
	EmbedModel     string `toml:"embed_model" env:"EMBED_MODEL"`
	EmbedBaseURL   string `toml:"embed_base_url" env:"EMBED_BASE_URL"`
	EmbedAPIKey    string `toml:"embed_api_key" env:"EMBED_API_KEY"`
	EmbedBatchSize int    `toml:"embed_batch_size" env:"EMBED_BATCH_SIZE"`
	EmbedRateRPS   int    `toml:"embed_rate_rps" env:"EMBED_RATE_RPS"`

	LLMProvider string `toml:"llm_provider" env:"LLM_PROVIDER"`
	LLMModel    string `toml:"llm_model" env:"LLM_MODEL"`
	LLMBaseURL  string `toml:"llm_base_url" env:"LLM_BASE_URL"`
	LLMAPIKey   string `toml:"llm_api_key" env:"LLM_API_KEY"`
}

// defaults is the base layer the file and environment overlay.
func defaults() *Config {
	return &Config{
		SourcesCSV: "sources/sources.csv",
		RawDir:     "data/raw",
		ParsedDir:  "data/parsed",
		ChunksPath: "corpus/chunks.jsonl",
		IndexPath:  "corpus/index.bin",
		MetaPath:   "corpus/meta.jsonl",
		HistoryDB:  "corpus/history.db",

		TargetWords:  DefaultTargetWords,
		MaxWords:     DefaultMaxWords,
		OverlapWords: DefaultOverlapWords,

		MinSectionChars: textclean.DefaultMinSectionChars,

		TopK: 8,

		EmbedProvider:  "openai",
		EmbedBatchSize: 64,
		EmbedRateRPS:   2,

		LLMProvider: "openai",
	}
}

// Load builds a Config from the defaults, the optional TOML file at
// path, and the environment, in that order. An empty path skips the
// file layer; a named file that does not exist is a configuration
// error. Only environment variables that are actually set override the
// earlier layers.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrInvalidConfig, path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", domain.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the chunk packer depends on.
// A violated sizing invariant would stall the packer or duplicate content.
func (c *Config) Validate() error {
	if c.TargetWords <= 0 || c.MaxWords <= 0 || c.OverlapWords < 0 {
		return fmt.Errorf("%w: chunk sizes must be positive", domain.ErrInvalidConfig)
	}
	if c.OverlapWords >= c.TargetWords {
		return fmt.Errorf("%w: overlap_words (%d) must be below target_words (%d)",
			domain.ErrInvalidConfig, c.OverlapWords, c.TargetWords)
	}
	if c.TargetWords > c.MaxWords {
		return fmt.Errorf("%w: target_words (%d) must not exceed max_words (%d)",
			domain.ErrInvalidConfig, c.TargetWords, c.MaxWords)
	}
	if c.MinSectionChars < 0 {
		return fmt.Errorf("%w: min_section_chars must not be negative", domain.ErrInvalidConfig)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
