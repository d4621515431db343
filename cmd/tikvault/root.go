// Package main provides the entry point for the tikvault CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/estebanpdl/tikvault/internal/config"
	"github.com/estebanpdl/tikvault/internal/log"
)

// NewRootCmd creates the root command for tikvault.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tikvault",
		Short: "Collect and export TikTok search result data",
		Long: `tikvault ingests scraped TikTok search result payloads, normalizes them,
and persists them into a local SQLite database.

Each payload may carry organic search results, image results, and
related-content cards. Ingested rows can be exported as CSV snapshots,
and the distinct set of collected video links can be listed at any time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewLinksCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// Credential-looking attributes and URL query parameters are masked.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// buildConfig creates a Config from cobra command flags.
// Precedence: built-in defaults < config file < explicit flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue with defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Explicit flags win over config file values.
	if cmd.Flags().Changed("output") {
		cfg.OutputDir, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	if f := cmd.Flags().Lookup("markdown"); f != nil && cmd.Flags().Changed("markdown") {
		cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}
