package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// Summary describes the outcome of one export run.
type Summary struct {
	// GeneratedAt is when the export ran.
	GeneratedAt time.Time

	// OutputDir is the directory the files were written to.
	OutputDir string

	// Tables holds one entry per table in canonical export order.
	Tables []TableSummary

	// DistinctLinks is the size of the collected video link set at export
	// time. Negative when the set was not computed.
	DistinctLinks int
}

// TableSummary describes the export outcome for one table.
type TableSummary struct {
	// Table is the table name.
	Table string

	// Rows is the number of data rows exported.
	Rows int

	// File is the written file name, empty when the table was skipped.
	File string

	// Err is the read or write failure that caused the skip, empty on
	// success.
	Err string
}

// Failed returns the number of tables that could not be exported.
func (s *Summary) Failed() int {
	var n int
	for _, t := range s.Tables {
		if t.Err != "" {
			n++
		}
	}
	return n
}

// TotalRows returns the number of rows exported across all tables.
func (s *Summary) TotalRows() int {
	var n int
	for _, t := range s.Tables {
		n += t.Rows
	}
	return n
}

// MarkdownWriter outputs an export summary in Markdown format.
// This format is designed for documentation and sharing alongside the CSV
// snapshots.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and alerts
// 3. Mermaid pie charts for the per-table row distribution
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the export summary in Markdown format.
// Returns the number of bytes in the generated document and any error
// encountered while building it.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeTables(md, summary)
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the document header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *Summary) {
	md.H1("Export Summary")
	md.PlainText("")

	rows := [][]string{
		{"Generated", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Output Directory", "`" + summary.OutputDir + "`"},
		{"Total Rows", strconv.Itoa(summary.TotalRows())},
	}
	if summary.DistinctLinks >= 0 {
		rows = append(rows, []string{"Distinct Video Links", strconv.Itoa(summary.DistinctLinks)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTables writes the per-table section with a row-count pie chart.
func (w *MarkdownWriter) writeTables(md *markdown.Markdown, summary *Summary) {
	md.H2("Tables")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Tables))
	for _, t := range summary.Tables {
		status := "`" + t.File + "`"
		if t.Err != "" {
			status = "skipped: " + t.Err
		}
		rows = append(rows, []string{t.Table, strconv.Itoa(t.Rows), status})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Table", "Rows", "File"},
		Rows:   rows,
	})

	if summary.TotalRows() > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Rows per Table"),
			piechart.WithShowData(true),
		)
		for _, t := range summary.Tables {
			if t.Rows > 0 {
				chart.LabelAndIntValue(t.Table, uint64(t.Rows))
			}
		}

		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	}
	md.PlainText("")
}

// writeAlert writes an alert reflecting the export outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *Summary) {
	switch {
	case summary.Failed() == len(summary.Tables) && len(summary.Tables) > 0:
		md.Cautionf("No table could be exported (%d failures).", summary.Failed())
	case summary.Failed() > 0:
		md.Warningf("%d table(s) were skipped; the remaining snapshots are complete.", summary.Failed())
	default:
		md.Tip("All tables exported.")
	}
	md.PlainText("")
}
