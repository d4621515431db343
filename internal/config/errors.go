package config

import "errors"

// Configuration errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoOutputDir is returned when no output directory is configured.
	// Every operation needs a home for the database file.
	ErrNoOutputDir = errors.New("no output directory: set --output or output_dir in the config file")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
