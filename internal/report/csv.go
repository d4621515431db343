package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/estebanpdl/tikvault/internal/model"
)

// CSVWriter outputs one table snapshot as a UTF-8 delimited file with a
// header row and no synthetic index column. NULL cells become empty cells.
//
// Design decision: We use standard encoding/csv rather than a third-party
// CSV library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. RFC 4180 quoting is all the export format needs
// 3. It provides consistent behavior across Go versions
type CSVWriter struct {
	output io.Writer
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{output: output}
}

// Write outputs the snapshot, header row first.
// Returns the number of bytes written and any error encountered.
func (w *CSVWriter) Write(snapshot *model.TableSnapshot) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(snapshot.Columns); err != nil {
		return counter.n, fmt.Errorf("failed to write header for %s: %w", snapshot.Table, err)
	}

	record := make([]string, len(snapshot.Columns))
	for _, row := range snapshot.Rows {
		for i, cell := range row {
			if cell.Valid {
				record[i] = cell.String
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return counter.n, fmt.Errorf("failed to write row for %s: %w", snapshot.Table, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return counter.n, fmt.Errorf("failed to flush %s: %w", snapshot.Table, err)
	}
	return counter.n, nil
}

// countingWriter counts bytes passed to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int
}

// Write implements io.Writer.
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
