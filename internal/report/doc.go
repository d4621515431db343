// Package report provides export and summary output for stored results.
//
// This package contains:
//   - CSVWriter: one-table CSV snapshot output for spreadsheet workflows
//   - MarkdownWriter: a Markdown export summary with per-table counts
//   - Exporter: the facade that reads every table and writes its files
//
// Design decision: We separate export writing from the storage layer so
// that new output formats can be added without touching the database
// package. The Exporter consumes a small TableReader interface rather than
// the concrete Store, which keeps the direction of dependencies clean and
// makes the facade trivially testable with a stub reader.
package report
