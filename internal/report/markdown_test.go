package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// createTestSummary returns a summary with two exported tables and one skip.
func createTestSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		OutputDir:   "/tmp/out",
		Tables: []TableSummary{
			{Table: "query_search_results", Rows: 12, File: "query_search_results.csv"},
			{Table: "images_results", Rows: 3, File: "images_results.csv"},
			{Table: "related_content", Err: "disk full"},
		},
		DistinctLinks: 14,
	}
}

// TestMarkdownWriter tests the Markdown export summary.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Export Summary") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "query_search_results") {
			t.Error("expected output to contain table name")
		}
		if !strings.Contains(output, "12") {
			t.Error("expected output to contain row count")
		}
		if !strings.Contains(output, "14") {
			t.Error("expected output to contain distinct link count")
		}
	})

	t.Run("writes pie chart when rows exist", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "mermaid") {
			t.Error("expected output to contain a mermaid chart")
		}
	})

	t.Run("warns about skipped tables", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "skipped") {
			t.Error("expected output to mention the skipped table")
		}
	})

	t.Run("omits link count when not computed", func(t *testing.T) {
		t.Parallel()

		summary := createTestSummary()
		summary.DistinctLinks = -1

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "Distinct Video Links") {
			t.Error("expected link row to be omitted")
		}
	})
}

// TestSummaryHelpers tests the Summary aggregate helpers.
func TestSummaryHelpers(t *testing.T) {
	t.Parallel()

	summary := createTestSummary()
	if summary.TotalRows() != 15 {
		t.Errorf("TotalRows = %d, want 15", summary.TotalRows())
	}
	if summary.Failed() != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed())
	}
}
