package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/estebanpdl/tikvault/internal/database"
)

// NewLinksCmd creates the links command.
func NewLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "List the distinct collected video links",
		Long: `Links prints the deduplicated set of video links collected across all
tables, one per line in sorted order.

Examples:
  # List collected links from the default database location
  tikvault links

  # List links collected into a custom output directory
  tikvault links -o ./collected`,
		Args: cobra.NoArgs,
		RunE: runLinksCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output directory holding the database (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tikvault in current or home directory)")

	return cmd
}

// runLinksCmd executes the links command.
func runLinksCmd(cmd *cobra.Command, _ []string) error {
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

	links := store.CollectedVideoLinks(ctx)

	sorted := make([]string, 0, len(links))
	for link := range links {
		sorted = append(sorted, link)
	}
	sort.Strings(sorted)

	out := cmd.OutOrStdout()
	for _, link := range sorted {
		fmt.Fprintln(out, link)
	}

	logger.Info("listed collected links", "count", len(sorted))

	return nil
}
