// Package chunker packs cleaned paragraph sequences into overlapping,
// word-bounded chunks for embedding and retrieval.
package chunker

import (
	"strings"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/textclean"
)

// Default chunk sizing, in words.
const (
	DefaultTargetWords  = 350
	DefaultMaxWords     = 500
	DefaultOverlapWords = 60
)

// Packer greedily packs paragraphs into chunks. Target is a soft
// early-flush threshold, max is a hard ceiling, and overlap words are
// carried from each flushed chunk into the next so context survives
// chunk boundaries.
type Packer struct {
	target  int
	max     int
	overlap int
}

// Option configures the packer.
type Option func(*Packer)

// WithTargetWords sets the soft flush threshold.
func WithTargetWords(n int) Option {
	return func(p *Packer) {
		if n > 0 {
			p.target = n
		}
	}
}

// WithMaxWords sets the hard chunk ceiling.
func WithMaxWords(n int) Option {
	return func(p *Packer) {
		if n > 0 {
			p.max = n
		}
	}
}

// WithOverlapWords sets the carry-over between consecutive chunks.
func WithOverlapWords(n int) Option {
	return func(p *Packer) {
		if n >= 0 {
			p.overlap = n
		}
	}
}

// New creates a packer. An overlap at or above the target would stall
// the packer, so it is clamped to a quarter of the target.
func New(opts ...Option) *Packer {
	p := &Packer{
		target:  DefaultTargetWords,
		max:     DefaultMaxWords,
		overlap: DefaultOverlapWords,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.target > p.max {
		p.target = p.max
	}
	if p.overlap >= p.target {
		p.overlap = p.target / 4
	}
	return p
}

// Pack converts one section's paragraphs into ordered chunks.
// Paragraph order is preserved and no content is silently dropped;
// only chunks that normalise to empty text are discarded.
func (p *Packer) Pack(paras []string) []domain.Chunk {
	var chunks []string
	var cur []string
	curWords := 0

	flush := func() {
		chunks = append(chunks, strings.Join(cur, " "))
		if p.overlap > 0 {
			words := strings.Fields(strings.Join(cur, " "))
			if len(words) > p.overlap {
				words = words[len(words)-p.overlap:]
			}
			if len(words) > 0 {
				seed := strings.Join(words, " ")
				cur = []string{seed}
				curWords = len(words)
				return
			}
		}
		cur = nil
		curWords = 0
	}

	for _, para := range paras {
		para = textclean.Normalize(para)
		if para == "" {
			continue
		}
		pw := WordCount(para)

		// A single oversized paragraph is hard-split into sliding word
		// windows, bypassing the accumulator entirely.
		if pw > p.max {
			chunks = append(chunks, p.hardSplit(para)...)
			continue
		}

		// Flush first when appending would breach the ceiling.
		if len(cur) > 0 && curWords+pw > p.max {
			flush()
		}

		cur = append(cur, para)
		curWords += pw

		// Soft threshold reached; flush early with carry-over.
		if curWords >= p.target {
			flush()
		}
	}

	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}

	out := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c = textclean.Normalize(c); c != "" {
			out = append(out, domain.Chunk{Text: c, WordCount: WordCount(c)})
		}
	}
	return out
}

// hardSplit windows an oversized paragraph into max-word slices,
// sliding back by the overlap between windows until all words are
// covered.
func (p *Packer) hardSplit(para string) []string {
	words := strings.Fields(para)
	var out []string
	start := 0
	for start < len(words) {
		end := start + p.max
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
		if end < len(words) {
			start = end - p.overlap
		} else {
			start = end
		}
	}
	return out
}
