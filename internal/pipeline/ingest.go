package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/estebanpdl/tikvault/internal/database"
	"github.com/estebanpdl/tikvault/internal/model"
)

// Payload is one decoded scrape payload. Absent categories decode to nil
// slices and are simply skipped.
type Payload struct {
	// SearchResults holds raw organic search result records.
	SearchResults []model.RawRecord `json:"search_results"`

	// ImagesResults holds raw image result records.
	ImagesResults []model.RawRecord `json:"images_results"`

	// RelatedContent holds raw related-content card records.
	RelatedContent []model.RawRecord `json:"related_content"`
}

// Empty reports whether the payload carries no records at all.
func (p *Payload) Empty() bool {
	return len(p.SearchResults) == 0 && len(p.ImagesResults) == 0 && len(p.RelatedContent) == 0
}

// DecodePayload decodes one payload document from r.
func DecodePayload(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &p, nil
}

// Inserter persists raw record batches. *database.Store satisfies this
// interface.
type Inserter interface {
	InsertSearchResults(ctx context.Context, records []model.RawRecord) database.InsertSummary
	InsertImagesResults(ctx context.Context, records []model.RawRecord) database.InsertSummary
	InsertRelatedContent(ctx context.Context, records []model.RawRecord) database.InsertSummary
}

// FileError records a payload file that could not be read or decoded.
type FileError struct {
	// Path is the payload file path.
	Path string

	// Err is the read or decode failure.
	Err error
}

// Error implements the error interface.
func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As matching.
func (e FileError) Unwrap() error { return e.Err }

// Result aggregates the outcome of one ingest run.
type Result struct {
	// Files is the number of payload files submitted.
	Files int

	// FileErrors holds one entry per file that failed to decode.
	// A decode failure skips that file; the rest of the run continues.
	FileErrors []FileError

	// Summaries holds the per-batch insert summaries in submission order.
	Summaries []database.InsertSummary
}

// Inserted returns the total number of rows persisted across all batches.
func (r *Result) Inserted() int {
	var n int
	for _, s := range r.Summaries {
		n += s.Inserted
	}
	return n
}

// FailedRows returns the total number of records rejected across all batches.
func (r *Result) FailedRows() int {
	var n int
	for _, s := range r.Summaries {
		n += s.Failed()
	}
	return n
}

// Ingestor feeds scraped payloads into the store.
type Ingestor struct {
	store  Inserter
	logger *slog.Logger

	// decodeLimit caps concurrent payload decodes.
	decodeLimit int
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets a custom logger for ingest diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingestor) {
		i.logger = logger
	}
}

// WithDecodeLimit caps the number of payload files decoded concurrently.
// Default is 4 if not specified; non-positive values are ignored.
func WithDecodeLimit(n int) Option {
	return func(i *Ingestor) {
		if n > 0 {
			i.decodeLimit = n
		}
	}
}

// NewIngestor creates an Ingestor writing through the given Inserter.
func NewIngestor(store Inserter, opts ...Option) *Ingestor {
	ing := &Ingestor{
		store:       store,
		decodeLimit: 4,
	}

	for _, opt := range opts {
		opt(ing)
	}

	if ing.logger == nil {
		ing.logger = slog.Default()
	}

	return ing
}

// IngestPayload persists all batches of one payload and returns their
// insert summaries.
func (i *Ingestor) IngestPayload(ctx context.Context, p *Payload) []database.InsertSummary {
	summaries := make([]database.InsertSummary, 0, 3)

	if len(p.SearchResults) > 0 {
		summaries = append(summaries, i.store.InsertSearchResults(ctx, p.SearchResults))
	}
	if len(p.ImagesResults) > 0 {
		summaries = append(summaries, i.store.InsertImagesResults(ctx, p.ImagesResults))
	}
	if len(p.RelatedContent) > 0 {
		summaries = append(summaries, i.store.InsertRelatedContent(ctx, p.RelatedContent))
	}

	return summaries
}

// IngestFiles decodes the given payload files and persists their records.
// Files are decoded concurrently; inserts run sequentially in file order so
// the single-writer store sees a deterministic stream. A file that cannot
// be decoded is recorded in the result and skipped; the run continues.
func (i *Ingestor) IngestFiles(ctx context.Context, paths []string) *Result {
	result := &Result{Files: len(paths)}

	i.logger.Info("starting ingest",
		"files", len(paths),
		"decode_limit", i.decodeLimit,
	)

	// Pre-allocate to keep file order without locking per element.
	payloads := make([]*Payload, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.decodeLimit)

	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			p, err := decodeFile(path)
			if err != nil {
				// Record and continue; a bad file must not abort the run.
				errs[idx] = err
				return nil
			}
			payloads[idx] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		i.logger.Warn("ingest cancelled", "error", err)
		return result
	}

	for idx, path := range paths {
		if errs[idx] != nil {
			result.FileErrors = append(result.FileErrors, FileError{Path: path, Err: errs[idx]})
			i.logger.Error("skipping payload file",
				"path", path,
				"error", errs[idx],
			)
			continue
		}

		if payloads[idx].Empty() {
			i.logger.Warn("payload carries no records", "path", path)
			continue
		}

		result.Summaries = append(result.Summaries, i.IngestPayload(ctx, payloads[idx])...)
	}

	i.logger.Info("ingest finished",
		"files", result.Files,
		"inserted", result.Inserted(),
		"failed_rows", result.FailedRows(),
		"failed_files", len(result.FileErrors),
	)

	return result
}

// decodeFile reads and decodes one payload file.
func decodeFile(path string) (*Payload, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided payload path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open payload file: %w", err)
	}
	defer f.Close()

	return DecodePayload(f)
}
