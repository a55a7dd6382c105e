package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the configuration fails validation.
	// Configuration errors are fatal and abort before any processing starts.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingRawHTML indicates the raw HTML store has no file for a
	// requested source. Fatal for that document only; the batch continues.
	ErrMissingRawHTML = errors.New("missing raw HTML")

	// ErrUnknownSource indicates a parsed document's source_id has no row
	// in the sources table. The chunk pipeline fails fast on this.
	ErrUnknownSource = errors.New("source_id not present in sources table")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexUnavailable indicates the vector index file cannot be used.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrDimensionMismatch indicates a vector's size does not match the index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
