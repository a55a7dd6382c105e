// Package index provides a flat inner-product nearest-neighbour index
// with file persistence. With L2-normalised vectors, inner product
// equals cosine similarity. Insertion order is the implicit primary
// key shared with the metadata sidecar.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/groundplane/webrag/internal/core/domain"
)

// Flat is a brute-force inner-product index.
type Flat struct {
	dim     int
	vectors [][]float32
}

// Result is one search hit: the insertion-order id and its score.
type Result struct {
	ID    int
	Score float32
}

// New creates an empty index for vectors of the given dimension.
func New(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", domain.ErrInvalidInput, dim)
	}
	return &Flat{dim: dim}, nil
}

// Dim returns the vector dimension.
func (f *Flat) Dim() int {
	return f.dim
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Add appends vectors in order. Ids are assigned implicitly by
// insertion position.
func (f *Flat) Add(vecs [][]float32) error {
	for _, v := range vecs {
		if len(v) != f.dim {
			return fmt.Errorf("%w: got %d, index has %d", domain.ErrDimensionMismatch, len(v), f.dim)
		}
	}
	f.vectors = append(f.vectors, vecs...)
	return nil
}

// Search returns the top k vectors by inner product, highest first.
// Ties break on the lower id so results are deterministic.
func (f *Flat) Search(q []float32, k int) ([]Result, error) {
	if len(q) != f.dim {
		return nil, fmt.Errorf("%w: query has %d, index has %d", domain.ErrDimensionMismatch, len(q), f.dim)
	}
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}

	results := make([]Result, len(f.vectors))
	for i, v := range f.vectors {
		results[i] = Result{ID: i, Score: dot(v, q)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Normalize scales v to unit length in place. Zero vectors are left
// untouched.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
