package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/estebanpdl/tikvault/internal/model"
)

// SummaryFileName is the name of the Markdown summary written next to the
// CSV snapshots.
const SummaryFileName = "export_summary.md"

// TableReader reads full-table snapshots for export.
// *database.Store satisfies this interface.
type TableReader interface {
	ReadTable(ctx context.Context, table string) (*model.TableSnapshot, error)
}

// Exporter is the export facade: it reads each table and writes one CSV
// snapshot per table into an output directory. Each table is an independent
// unit of work; a failed read or write skips that table and the rest
// continue.
type Exporter struct {
	reader TableReader
	logger *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithLogger sets a custom logger for export diagnostics.
func WithLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter reading through the given TableReader.
func NewExporter(reader TableReader, opts ...ExporterOption) *Exporter {
	e := &Exporter{reader: reader}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// ExportAll writes <table>.csv for every table into outputDir and returns
// a Summary of what happened. Failures are recorded per table and logged;
// ExportAll itself never fails outward.
func (e *Exporter) ExportAll(ctx context.Context, outputDir string) *Summary {
	summary := &Summary{
		GeneratedAt:   time.Now(),
		OutputDir:     outputDir,
		DistinctLinks: -1,
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		e.logger.Error("failed to create export directory",
			"dir", outputDir,
			"error", err,
		)
		for _, table := range model.Tables() {
			summary.Tables = append(summary.Tables, TableSummary{Table: table, Err: err.Error()})
		}
		return summary
	}

	for _, table := range model.Tables() {
		summary.Tables = append(summary.Tables, e.exportTable(ctx, table, outputDir))
	}

	e.logger.Info("export finished",
		"dir", outputDir,
		"rows", summary.TotalRows(),
		"skipped_tables", summary.Failed(),
	)

	return summary
}

// exportTable reads one table and writes its CSV snapshot.
func (e *Exporter) exportTable(ctx context.Context, table, outputDir string) TableSummary {
	snapshot, err := e.reader.ReadTable(ctx, table)
	if err != nil {
		e.logger.Error("failed to read table, skipping export",
			"table", table,
			"error", err,
		)
		return TableSummary{Table: table, Err: err.Error()}
	}

	fileName := table + ".csv"
	path := filepath.Join(outputDir, fileName)

	f, err := os.Create(path) //nolint:gosec // path is derived from the fixed table set
	if err != nil {
		e.logger.Error("failed to create export file",
			"table", table,
			"path", path,
			"error", err,
		)
		return TableSummary{Table: table, Err: err.Error()}
	}

	_, werr := NewCSVWriter(f).Write(snapshot)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		e.logger.Error("failed to write export file",
			"table", table,
			"path", path,
			"error", werr,
		)
		return TableSummary{Table: table, Err: werr.Error()}
	}

	return TableSummary{Table: table, Rows: len(snapshot.Rows), File: fileName}
}

// WriteSummaryFile writes the Markdown export summary next to the CSV
// snapshots and returns its path.
func WriteSummaryFile(summary *Summary) (string, error) {
	path := filepath.Join(summary.OutputDir, SummaryFileName)

	f, err := os.Create(path) //nolint:gosec // fixed file name inside the export directory
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}

	_, werr := NewMarkdownWriter(f).Write(summary)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", fmt.Errorf("failed to write summary file: %w", werr)
	}

	return path, nil
}
