// Package answer turns retrieved chunks and a question into a short
// natural-language answer via the LLM service.
package answer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/core/ports/driven"
)

// Fallback is the exact string returned when the supplied context does
// not support an answer.
const Fallback = "I don't know."

// Truncate context chunks so a handful of long chunks cannot crowd the
// question out of the prompt.
const maxChunkChars = 1200

// Some models leak their scratchpad despite instructions.
var thinkRE = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Generator answers questions over retrieved chunks.
type Generator struct {
	llm driven.LLMService
}

// New creates a Generator backed by the given LLM service.
func New(llm driven.LLMService) *Generator {
	return &Generator{llm: llm}
}

// Answer builds the context prompt and asks the model. An empty chunk
// sequence cannot support an answer, so the fallback is returned
// without spending a model call. LLM errors propagate unretried.
func (g *Generator) Answer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error) {
	blocks := contextBlocks(chunks)
	if len(blocks) == 0 {
		return Fallback, nil
	}

	prompt := buildPrompt(question, strings.Join(blocks, "\n\n"))
	out, err := g.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	out = strings.TrimSpace(thinkRE.ReplaceAllString(out, ""))
	if out == "" {
		return Fallback, nil
	}
	return out, nil
}

// contextBlocks renders each chunk as a numbered block with a META
// line listing whatever provenance the record carries.
func contextBlocks(chunks []domain.RetrievedChunk) []string {
	var blocks []string
	for _, ch := range chunks {
		text := strings.TrimSpace(ch.Text)
		if text == "" {
			continue
		}
		if r := []rune(text); len(r) > maxChunkChars {
			text = string(r[:maxChunkChars])
		}

		block := fmt.Sprintf("[%d] %s", len(blocks)+1, text)
		if meta := metaLine(ch); meta != "" {
			block += "\nMETA: " + meta
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func metaLine(ch domain.RetrievedChunk) string {
	var parts []string
	appendIf := func(key, val string) {
		if val != "" {
			parts = append(parts, key+"="+val)
		}
	}
	appendIf("url", ch.URL)
	appendIf("doc_id", ch.DocID)
	appendIf("source_id", ch.SourceID)
	appendIf("jurisdiction", ch.Jurisdiction)
	appendIf("section", ch.Section)
	if ch.HasScore {
		parts = append(parts, fmt.Sprintf("score=%.3f", ch.Score))
	}
	return strings.Join(parts, " | ")
}

const promptTemplate = `You must follow these rules strictly.

RULES:
- You must do exactly ONE of the following:
1) If the answer is contained in the TEXT, output ONLY the final answer.
2) If the answer is NOT contained in the TEXT, output EXACTLY: I don't know.
- Do NOT include reasoning or <think>.
- Keep the answer short.

TEXT:
%s

QUESTION:
%s

FINAL ANSWER:`

func buildPrompt(question, context string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}
