package reports

import (
	"strings"
	"testing"
	"time"
)

func TestBuildJobRunsBaseQuery(t *testing.T) {
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	query, args := buildJobRunsBaseQuery(JobRunFilter{JobType: " auto_checkout ", StartedFrom: &from})

	if !strings.Contains(query, "job_type = $1") || !strings.Contains(query, "started_at >= $2") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "auto_checkout" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDecodeDetails(t *testing.T) {
	if got := decodeDetails([]byte(`{"ran":true}`)); got["ran"] != true {
		t.Fatalf("unexpected details: %v", got)
	}
	if got := decodeDetails([]byte(`not json`)); got["raw"] != "not json" {
		t.Fatalf("expected raw fallback, got %v", got)
	}
	if got := decodeDetails(nil); len(got) != 0 {
		t.Fatalf("expected empty details, got %v", got)
	}
}
