package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/groundplane/webrag/internal/core/domain"
)

// Index file layout, little endian: magic, format version, dimension,
// vector count, then count*dim raw float32 values in insertion order.
const (
	fileMagic   = uint32(0x57524958) // "WRIX"
	fileVersion = uint32(1)
)

// WriteFile persists the index at path, creating parent directories.
func (f *Flat) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index dir: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	w := bufio.NewWriter(out)

	header := []uint32{fileMagic, fileVersion, uint32(f.dim), uint32(len(f.vectors))}
	for _, h := range header {
		if err := binary.Write(w, binary.LittleEndian, h); err != nil {
			out.Close()
			return fmt.Errorf("write index header: %w", err)
		}
	}

	buf := make([]byte, 4)
	for _, vec := range f.vectors {
		for _, x := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(x))
			if _, err := w.Write(buf); err != nil {
				out.Close()
				return fmt.Errorf("write index vectors: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("flush index file: %w", err)
	}
	return out.Close()
}

// Load reads an index file written by WriteFile.
func Load(path string) (*Flat, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrIndexUnavailable, path, err)
	}
	defer in.Close()

	r := bufio.NewReader(in)
	var magic, version, dim, count uint32
	for _, dst := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("%w: read header: %w", domain.ErrIndexUnavailable, err)
		}
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("%w: %s is not an index file", domain.ErrIndexUnavailable, path)
	}
	if version != fileVersion {
		return nil, fmt.Errorf("%w: unsupported index version %d", domain.ErrIndexUnavailable, version)
	}

	f, err := New(int(dim))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	buf := make([]byte, 4)
	f.vectors = make([][]float32, count)
	for i := range f.vectors {
		vec := make([]float32, dim)
		for j := range vec {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: read vectors: %w", domain.ErrIndexUnavailable, err)
			}
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
		f.vectors[i] = vec
	}
	return f, nil
}
