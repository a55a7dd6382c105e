package domain

import (
	"testing"
	"time"
)

func TestNewBatchReport(t *testing.T) {
	r := NewBatchReport("parse")
	if r.RunID == "" {
		t.Error("expected a run id")
	}
	if r.Stage != "parse" {
		t.Errorf("expected stage parse, got %q", r.Stage)
	}
	if r.StartedAt.IsZero() {
		t.Error("expected a start time")
	}
	if NewBatchReport("parse").RunID == r.RunID {
		t.Error("run ids must be unique per report")
	}
}

func TestBatchReport_Counts(t *testing.T) {
	r := NewBatchReport("chunk")
	r.Add(DocumentResult{SourceID: "a", Status: DocumentOK})
	r.Add(DocumentResult{SourceID: "b", Status: DocumentFailed, Reason: "boom"})
	r.Add(DocumentResult{SourceID: "c", Status: DocumentOK})

	ok, failed := r.Counts()
	if ok != 2 || failed != 1 {
		t.Errorf("expected 2 ok / 1 failed, got %d / %d", ok, failed)
	}
}

func TestBatchReport_Finish(t *testing.T) {
	r := NewBatchReport("index")
	r.StartedAt = time.Now().Add(-time.Second)
	r.Finish()
	if r.Duration < time.Second {
		t.Errorf("expected at least 1s duration, got %s", r.Duration)
	}
}

func TestDocumentResult_Failed(t *testing.T) {
	if (DocumentResult{Status: DocumentOK}).Failed() {
		t.Error("ok result reported as failed")
	}
	if !(DocumentResult{Status: DocumentFailed}).Failed() {
		t.Error("failed result not reported as failed")
	}
}

func TestSourceMetadata_IsWebpage(t *testing.T) {
	cases := []struct {
		docType string
		want    bool
	}{
		{"webpage", true},
		{"Webpage", true},
		{"WEBPAGE", true},
		{"pdf", false},
		{"", false},
	}
	for _, c := range cases {
		got := SourceMetadata{DocumentType: c.docType}.IsWebpage()
		if got != c.want {
			t.Errorf("IsWebpage(%q) = %v, want %v", c.docType, got, c.want)
		}
	}
}
