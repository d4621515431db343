package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/estebanpdl/tikvault/internal/database"
	"github.com/estebanpdl/tikvault/internal/report"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export collected data as CSV snapshots",
		Long: `Export writes one CSV snapshot per table into the output directory:
query_search_results.csv, images_results.csv, and related_content.csv.

A Markdown summary (export_summary.md) is written next to the snapshots
unless disabled with --markdown=false or in the configuration file. Each
table is exported independently; a table that cannot be read is skipped
and the rest still complete.

Examples:
  # Export from the default database location
  tikvault export

  # Export from a custom output directory
  tikvault export -o ./collected

  # Skip the Markdown summary
  tikvault export --markdown=false`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output directory holding the database and export files (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tikvault in current or home directory)")
	cmd.Flags().BoolP("markdown", "m", true,
		"Write a Markdown summary next to the CSV snapshots")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
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

	store, err := database.Open(cfg.OutputDir, database.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	exporter := report.NewExporter(store, report.WithLogger(logger))
	summary := exporter.ExportAll(ctx, cfg.OutputDir)
	summary.DistinctLinks = len(store.CollectedVideoLinks(ctx))

	out := cmd.OutOrStdout()
	for _, table := range summary.Tables {
		if table.Err != "" {
			fmt.Fprintf(out, "%s: export failed: %s\n", table.Table, table.Err)
			continue
		}
		fmt.Fprintf(out, "%s: %d rows -> %s\n", table.Table, table.Rows, table.File)
	}
	fmt.Fprintf(out, "Collected video links: %d distinct\n", summary.DistinctLinks)

	if cfg.MarkdownSummary {
		path, err := report.WriteSummaryFile(summary)
		if err != nil {
			return fmt.Errorf("failed to write export summary: %w", err)
		}
		fmt.Fprintf(out, "Summary written to %s\n", path)
	}

	if len(summary.Tables) > 0 && summary.Failed() == len(summary.Tables) {
		return errors.New("every table export failed")
	}

	return nil
}
