package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the outcome of processing one document.
type DocumentStatus string

const (
	// DocumentOK means the document was processed end to end.
	DocumentOK DocumentStatus = "ok"

	// DocumentFailed means the document was skipped after an error.
	DocumentFailed DocumentStatus = "failed"
)

// DocumentResult records the per-document outcome of a batch stage.
// Failures are data, not control flow: the batch loop appends a failed
// result and moves on to the next document.
type DocumentResult struct {
	SourceID string
	Status   DocumentStatus
	Sections int
	Reason   string
}

// Failed reports whether the document was skipped.
func (r DocumentResult) Failed() bool {
	return r.Status == DocumentFailed
}

// BatchReport summarises one pipeline stage run over the whole corpus.
type BatchReport struct {
	RunID     string
	Stage     string
	StartedAt time.Time
	Duration  time.Duration

	Documents []DocumentResult

	// Counters for data-quality rejections. Not errors; reported only.
	ChunksWritten   int
	SectionsKept    int
	SectionsSkipped int
}

// NewBatchReport starts a report for the named stage.
func NewBatchReport(stage string) *BatchReport {
	return &BatchReport{
		RunID:     uuid.New().String(),
		Stage:     stage,
		StartedAt: time.Now(),
	}
}

// Add appends a per-document result.
func (b *BatchReport) Add(r DocumentResult) {
	b.Documents = append(b.Documents, r)
}

// Finish records the elapsed time.
func (b *BatchReport) Finish() {
	b.Duration = time.Since(b.StartedAt)
}

// Counts returns processed and failed document totals.
func (b *BatchReport) Counts() (ok, failed int) {
	for _, d := range b.Documents {
		if d.Failed() {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}
