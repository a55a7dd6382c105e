// Package store reads and writes the pipeline's file stores: parsed
// document JSON, and the line-delimited JSON chunk and metadata files.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/groundplane/webrag/internal/core/domain"
)

// ChunkWriter writes chunk records one JSON object per line, UTF-8,
// non-ASCII left unescaped. The store is rebuilt wholesale on each run;
// writes within a run are append-only.
type ChunkWriter struct {
	f   *os.File
	w   *bufio.Writer
	enc *json.Encoder
	n   int
}

// NewChunkWriter truncates and opens the chunk store at path, creating
// parent directories as needed.
func NewChunkWriter(path string) (*ChunkWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create chunk store: %w", err)
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &ChunkWriter{f: f, w: w, enc: enc}, nil
}

// Write appends one record. Encode emits a trailing newline, which is
// exactly the line-delimited framing the store wants.
func (cw *ChunkWriter) Write(rec domain.ChunkRecord) error {
	if err := cw.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode chunk %s: %w", rec.ChunkID, err)
	}
	cw.n++
	return nil
}

// Count returns the number of records written so far.
func (cw *ChunkWriter) Count() int {
	return cw.n
}

// Close flushes and closes the store.
func (cw *ChunkWriter) Close() error {
	if err := cw.w.Flush(); err != nil {
		cw.f.Close()
		return err
	}
	return cw.f.Close()
}

// ReadChunks loads every record from a line-delimited chunk or
// metadata file, preserving line order. Line order is the implicit
// primary key shared with the vector index and must never be re-sorted.
func ReadChunks(path string) ([]domain.ChunkRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chunk store: %w", err)
	}
	defer f.Close()

	var out []domain.ChunkRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec domain.ChunkRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan chunk store: %w", err)
	}
	return out, nil
}

// WriteMeta writes the metadata sidecar for the vector index: the same
// records, in the same order as their embeddings were inserted.
func WriteMeta(path string, recs []domain.ChunkRecord) error {
	cw, err := NewChunkWriter(path)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(rec); err != nil {
			cw.Close()
			return err
		}
	}
	return cw.Close()
}
