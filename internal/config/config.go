package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the application name used for XDG directory paths.
const AppName = "tikvault"

// Config holds all configuration options for tikvault.
type Config struct {
	// OutputDir is the directory holding the SQLite database file and all
	// exported files. Defaults to the XDG data directory.
	OutputDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// MarkdownSummary controls whether export writes export_summary.md
	// next to the CSV snapshots.
	MarkdownSummary bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .tikvault in the current directory and then in the
	// user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because the default output directory is non-zero. This also
// serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		OutputDir:       XDGDataDir(),
		MarkdownSummary: true,
	}
}

// XDGDataDir returns the XDG data directory for tikvault.
// On Linux: ~/.local/share/tikvault
// On macOS: ~/Library/Application Support/tikvault
// On Windows: %LOCALAPPDATA%\tikvault
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for tikvault.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile overlays values from a loaded config file. Only fields the
// file actually sets are applied, so flag-provided values survive.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.MarkdownSummary != nil {
		c.MarkdownSummary = *f.MarkdownSummary
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	return nil
}
