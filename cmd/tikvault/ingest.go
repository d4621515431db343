package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/estebanpdl/tikvault/internal/database"
	"github.com/estebanpdl/tikvault/internal/pipeline"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [payload-file...]",
		Short: "Ingest scraped result payloads into the database",
		Long: `Ingest reads one or more JSON payload files produced by the scraping layer
and persists their records into the local SQLite database.

Each payload may carry up to three record batches: search_results,
images_results, and related_content. Records are normalized on the way in:
author, profile link, and post ID are derived from the result link, and
like/comment counts are extracted from the snippet text. A record whose
link cannot be parsed is reported and skipped; the rest of the batch is
still persisted.

Examples:
  # Ingest a single payload file
  tikvault ingest results.json

  # Ingest several payloads in one run
  tikvault ingest run1.json run2.json run3.json

  # Read a payload from stdin
  curl -s "$SEARCH_URL" | tikvault ingest -

  # Persist into a custom output directory
  tikvault ingest -o ./collected results.json`,
		Args: cobra.ArbitraryArgs,
		RunE: runIngestCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output directory for the database (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tikvault in current or home directory)")

	return cmd
}

// runIngestCmd executes the ingest command.
func runIngestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	// Split positional arguments into files and the stdin marker.
	var files []string
	useStdin := false
	for _, arg := range args {
		if arg == "-" {
			useStdin = true
			continue
		}
		files = append(files, arg)
	}

	if !useStdin && len(files) == 0 {
		return errors.New("no payloads provided (pass one or more JSON files, or - for stdin)")
	}

	store, err := database.Open(cfg.OutputDir, database.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	ing := pipeline.NewIngestor(store, pipeline.WithLogger(logger))

	var summaries []database.InsertSummary
	var fileErrors []pipeline.FileError

	if len(files) > 0 {
		result := ing.IngestFiles(ctx, files)
		summaries = append(summaries, result.Summaries...)
		fileErrors = result.FileErrors
	}

	if useStdin {
		payload, err := pipeline.DecodePayload(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to decode stdin payload: %w", err)
		}
		summaries = append(summaries, ing.IngestPayload(ctx, payload)...)
	}

	if !useStdin && len(fileErrors) == len(files) {
		return fmt.Errorf("no payload could be ingested (%d files failed)", len(fileErrors))
	}

	out := cmd.OutOrStdout()

	var inserted, rejected int
	for _, s := range summaries {
		inserted += s.Inserted
		rejected += s.Failed()
	}

	fmt.Fprintf(out, "Ingested %d rows into %s (%d rejected)\n", inserted, store.Path(), rejected)
	for _, fe := range fileErrors {
		fmt.Fprintf(out, "  skipped %s: %v\n", fe.Path, fe.Err)
	}

	links := store.CollectedVideoLinks(ctx)
	fmt.Fprintf(out, "Collected video links: %d distinct\n", len(links))

	return nil
}
