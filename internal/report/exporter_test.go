package report

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/estebanpdl/tikvault/internal/model"
)

// stubReader serves canned snapshots and failures per table.
type stubReader struct {
	snapshots map[string]*model.TableSnapshot
	failures  map[string]error
}

// ReadTable implements TableReader.
func (s *stubReader) ReadTable(_ context.Context, table string) (*model.TableSnapshot, error) {
	if err, ok := s.failures[table]; ok {
		return nil, err
	}
	if snap, ok := s.snapshots[table]; ok {
		return snap, nil
	}
	return &model.TableSnapshot{Table: table, Columns: []string{"record_id"}}, nil
}

// TestExporterExportAll tests the export facade.
func TestExporterExportAll(t *testing.T) {
	t.Parallel()

	t.Run("writes one csv per table", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		reader := &stubReader{
			snapshots: map[string]*model.TableSnapshot{
				model.TableSearchResults: {
					Table:   model.TableSearchResults,
					Columns: []string{"record_id", "title"},
					Rows: [][]sql.NullString{
						{{String: "1", Valid: true}, {String: "a", Valid: true}},
						{{String: "2", Valid: true}, {String: "b", Valid: true}},
					},
				},
			},
		}

		e := NewExporter(reader, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		summary := e.ExportAll(context.Background(), dir)

		if summary.Failed() != 0 {
			t.Fatalf("unexpected failures: %+v", summary.Tables)
		}
		for _, table := range model.Tables() {
			if _, err := os.Stat(filepath.Join(dir, table+".csv")); err != nil {
				t.Errorf("missing export file for %s: %v", table, err)
			}
		}

		f, err := os.Open(filepath.Join(dir, model.TableSearchResults+".csv"))
		if err != nil {
			t.Fatalf("failed to open export: %v", err)
		}
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("expected header + 2 rows, got %d", len(records))
		}
	})

	t.Run("failed table read skips only that table", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		reader := &stubReader{
			failures: map[string]error{
				model.TableImagesResults: errors.New("read failed"),
			},
		}

		e := NewExporter(reader, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		summary := e.ExportAll(context.Background(), dir)

		if summary.Failed() != 1 {
			t.Fatalf("Failed = %d, want 1", summary.Failed())
		}
		if _, err := os.Stat(filepath.Join(dir, model.TableImagesResults+".csv")); !os.IsNotExist(err) {
			t.Error("skipped table should not produce a file")
		}
		if _, err := os.Stat(filepath.Join(dir, model.TableSearchResults+".csv")); err != nil {
			t.Errorf("other tables should still export: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, model.TableRelatedContent+".csv")); err != nil {
			t.Errorf("other tables should still export: %v", err)
		}
	})

	t.Run("summary file lands next to snapshots", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		e := NewExporter(&stubReader{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		summary := e.ExportAll(context.Background(), dir)

		path, err := WriteSummaryFile(summary)
		if err != nil {
			t.Fatalf("failed to write summary: %v", err)
		}
		if filepath.Dir(path) != dir {
			t.Errorf("summary written to %s, want inside %s", path, dir)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		if err != nil {
			t.Fatalf("failed to read summary: %v", err)
		}
		if len(data) == 0 {
			t.Error("summary file is empty")
		}
	})
}
