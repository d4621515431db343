package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/estebanpdl/tikvault/internal/model"
)

// DatabaseFileName is the name of the SQLite file inside the output
// directory. The .sql suffix is a stable external interface inherited from
// earlier collection runs; existing archives rely on it.
const DatabaseFileName = "database.sql"

// Store persists normalized scraping results into a single SQLite file.
//
// Store holds no open connection. Every public operation opens a handle,
// does its work, and closes the handle on every exit path. The zero-valued
// cost of re-opening a SQLite file is a deliberate trade for the guarantee
// that connection lifetime never spans two public calls.
type Store struct {
	// dbPath is the path to the SQLite database file.
	dbPath string

	// outputDir is the directory holding the database file.
	outputDir string

	// logger receives diagnostics for degraded operations. Failures are
	// reported here rather than returned wherever the contract is
	// best-effort.
	logger *slog.Logger
}

// Options configures Store behavior.
type Options struct {
	// Logger receives operational diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Open creates a Store rooted at outputDir, creating the directory if
// needed, and idempotently ensures all three tables exist. Ensuring tables
// is safe to repeat on every construction; an ensure failure is reported
// through the logger and does not fail Open.
func Open(outputDir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		dbPath:    filepath.Join(outputDir, DatabaseFileName),
		outputDir: outputDir,
		logger:    logger,
	}

	ctx := context.Background()
	s.EnsureSearchResultsTable(ctx)
	s.EnsureImagesResultsTable(ctx)
	s.EnsureRelatedContentTable(ctx)

	return s, nil
}

// Path returns the path of the SQLite database file.
func (s *Store) Path() string { return s.dbPath }

// OutputDir returns the directory holding the database file.
func (s *Store) OutputDir() string { return s.outputDir }

// openHandle opens a database handle and verifies the store is reachable.
// Callers must close the returned handle.
func (s *Store) openHandle(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection also keeps the
	// per-row commit ordering deterministic.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// sql.Open is lazy, so ping to surface connection failures here where
	// the degrade-to-no-op policy is applied.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Table creation statements. Every column is nullable TEXT besides the
// synthetic auto-incrementing primary key; absence in the raw record maps
// to NULL, never an error.
const (
	createSearchResultsSQL = `CREATE TABLE IF NOT EXISTS query_search_results (
		record_id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT,
		title TEXT,
		snippet TEXT,
		link TEXT,
		thumbnail TEXT,
		video_link TEXT,
		snippet_highlighted_words TEXT,
		displayed_link TEXT,
		title_snippet TEXT,
		likes TEXT,
		comments TEXT,
		author TEXT,
		link_to_author TEXT,
		post_id TEXT
	)`

	createImagesResultsSQL = `CREATE TABLE IF NOT EXISTS images_results (
		record_id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT,
		title TEXT,
		link TEXT,
		thumbnail TEXT,
		author TEXT,
		link_to_author TEXT,
		post_id TEXT
	)`

	createRelatedContentSQL = `CREATE TABLE IF NOT EXISTS related_content (
		record_id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT,
		link TEXT,
		thumbnail TEXT,
		title TEXT
	)`
)

// EnsureSearchResultsTable idempotently creates the query_search_results
// table. Failures are reported through the logger, not returned.
func (s *Store) EnsureSearchResultsTable(ctx context.Context) {
	s.ensureTable(ctx, model.TableSearchResults, createSearchResultsSQL)
}

// EnsureImagesResultsTable idempotently creates the images_results table.
func (s *Store) EnsureImagesResultsTable(ctx context.Context) {
	s.ensureTable(ctx, model.TableImagesResults, createImagesResultsSQL)
}

// EnsureRelatedContentTable idempotently creates the related_content table.
func (s *Store) EnsureRelatedContentTable(ctx context.Context) {
	s.ensureTable(ctx, model.TableRelatedContent, createRelatedContentSQL)
}

// ensureTable opens its own connection, issues the CREATE TABLE IF NOT
// EXISTS statement, and closes the connection regardless of outcome.
func (s *Store) ensureTable(ctx context.Context, table, ddl string) {
	db, err := s.openHandle(ctx)
	if err != nil {
		s.logger.Error("failed to create database connection",
			"table", table,
			"error", err,
		)
		return
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		s.logger.Error("failed to ensure table",
			"table", table,
			"error", err,
		)
	}
}

// RowError records the failure of a single record within a batch insert.
type RowError struct {
	// Index is the position of the failed record within the submitted batch.
	Index int

	// Err is the normalization or insert error for that record.
	Err error
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As matching.
func (e RowError) Unwrap() error { return e.Err }

// InsertSummary is the structured result of a batch insert. It replaces
// print-style error reporting: the caller decides whether row failures
// warrant logging, metrics, or escalation.
type InsertSummary struct {
	// Table is the destination table.
	Table string

	// Attempted is the number of records submitted in the batch.
	Attempted int

	// Inserted is the number of rows durably committed.
	Inserted int

	// RowErrors holds one entry per failed record, in batch order.
	RowErrors []RowError
}

// Failed returns the number of records that were not persisted.
func (s InsertSummary) Failed() int { return len(s.RowErrors) }

// Insert statements, bound in table column order.
const (
	insertSearchResultSQL = `INSERT INTO query_search_results (
		source, title, snippet, link, thumbnail, video_link,
		snippet_highlighted_words, displayed_link, title_snippet,
		likes, comments, author, link_to_author, post_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertImageResultSQL = `INSERT INTO images_results (
		source, title, link, thumbnail, author, link_to_author, post_id
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertRelatedContentSQL = `INSERT INTO related_content (
		source, link, thumbnail, title
	) VALUES (?, ?, ?, ?)`
)

// InsertSearchResults normalizes and persists a batch of raw organic search
// result records. Each row is committed individually so a later failure
// never rolls back earlier rows; a failed row is recorded in the summary
// and the batch continues. A connection failure degrades the whole call to
// a reported no-op.
func (s *Store) InsertSearchResults(ctx context.Context, records []model.RawRecord) InsertSummary {
	return s.insertBatch(ctx, model.TableSearchResults, insertSearchResultSQL, records,
		func(raw model.RawRecord) ([]any, error) {
			r, err := model.SearchResultFromRaw(raw)
			if err != nil {
				return nil, err
			}
			return r.Values(), nil
		})
}

// InsertImagesResults normalizes and persists a batch of raw image result
// records with the same per-row commit-and-continue discipline.
func (s *Store) InsertImagesResults(ctx context.Context, records []model.RawRecord) InsertSummary {
	return s.insertBatch(ctx, model.TableImagesResults, insertImageResultSQL, records,
		func(raw model.RawRecord) ([]any, error) {
			r, err := model.ImageResultFromRaw(raw)
			if err != nil {
				return nil, err
			}
			return r.Values(), nil
		})
}

// InsertRelatedContent persists a batch of related-content records.
// The pass-through normalizer cannot fail, so row errors here can only come
// from the storage engine itself.
func (s *Store) InsertRelatedContent(ctx context.Context, records []model.RawRecord) InsertSummary {
	return s.insertBatch(ctx, model.TableRelatedContent, insertRelatedContentSQL, records,
		func(raw model.RawRecord) ([]any, error) {
			return model.RelatedContentFromRaw(raw).Values(), nil
		})
}

// insertBatch runs the shared per-row insert loop.
//
// Design decision: durability per row over batch atomicity. Commits happen
// per statement, so a crash or a malformed record mid-batch leaves every
// earlier row persisted. Ingestion pipelines prefer partial persistence to
// total failure; consumers must not assume batches appear atomically.
func (s *Store) insertBatch(
	ctx context.Context,
	table, insertSQL string,
	records []model.RawRecord,
	normalize func(model.RawRecord) ([]any, error),
) InsertSummary {
	summary := InsertSummary{Table: table, Attempted: len(records)}

	db, err := s.openHandle(ctx)
	if err != nil {
		s.logger.Error("failed to create database connection",
			"table", table,
			"records", len(records),
			"error", err,
		)
		return summary
	}
	defer db.Close()

	for i, raw := range records {
		values, err := normalize(raw)
		if err != nil {
			summary.RowErrors = append(summary.RowErrors, RowError{Index: i, Err: err})
			s.logger.Warn("skipping record that failed normalization",
				"table", table,
				"index", i,
				"error", err,
			)
			continue
		}

		if _, err := db.ExecContext(ctx, insertSQL, values...); err != nil {
			summary.RowErrors = append(summary.RowErrors, RowError{Index: i, Err: err})
			s.logger.Warn("failed to insert record",
				"table", table,
				"index", i,
				"error", err,
			)
			continue
		}
		summary.Inserted++
	}

	s.logger.Info("batch insert finished",
		"table", table,
		"attempted", summary.Attempted,
		"inserted", summary.Inserted,
		"failed", summary.Failed(),
	)

	return summary
}

// CollectedVideoLinks returns the deduplicated union of the link column
// across the search results and image results tables. Rows with a NULL
// link are skipped. A connection or query failure is reported and yields
// an empty set.
func (s *Store) CollectedVideoLinks(ctx context.Context) map[string]struct{} {
	links := make(map[string]struct{})

	db, err := s.openHandle(ctx)
	if err != nil {
		s.logger.Error("failed to create database connection", "error", err)
		return links
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT link FROM query_search_results
		UNION
		SELECT link FROM images_results
	`)
	if err != nil {
		s.logger.Error("failed to query collected video links", "error", err)
		return links
	}
	defer rows.Close()

	for rows.Next() {
		var link sql.NullString
		if err := rows.Scan(&link); err != nil {
			s.logger.Warn("failed to scan link row", "error", err)
			continue
		}
		if link.Valid {
			links[link.String] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("failed while reading link rows", "error", err)
	}

	return links
}

// ReadTable reads a full table into memory for export. The table name must
// be one of the fixed schema tables; it is interpolated as an identifier,
// so unknown names fail with ErrUnknownTable before touching the database.
func (s *Store) ReadTable(ctx context.Context, table string) (*model.TableSnapshot, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("%w: got %q", ErrUnknownTable, table)
	}

	db, err := s.openHandle(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table) //nolint:gosec // table is validated against the fixed schema
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	snapshot := &model.TableSnapshot{Table: table, Columns: columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		snapshot.Rows = append(snapshot.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading %s: %w", table, err)
	}

	return snapshot, nil
}

// Counts returns the number of stored rows per table. Tables that cannot
// be counted are reported and omitted from the result.
func (s *Store) Counts(ctx context.Context) map[string]int64 {
	counts := make(map[string]int64, len(model.Tables()))

	db, err := s.openHandle(ctx)
	if err != nil {
		s.logger.Error("failed to create database connection", "error", err)
		return counts
	}
	defer db.Close()

	for _, table := range model.Tables() {
		var n int64
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil { //nolint:gosec // fixed table set
			s.logger.Error("failed to count table rows", "table", table, "error", err)
			continue
		}
		counts[table] = n
	}

	return counts
}

// knownTable reports whether table belongs to the fixed schema.
func knownTable(table string) bool {
	for _, t := range model.Tables() {
		if t == table {
			return true
		}
	}
	return false
}
