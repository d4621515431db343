package database

import "errors"

// Storage errors.
//
// Design decision: We use package-level sentinel errors so callers can use
// errors.Is() for programmatic handling while still getting human-readable
// messages. Connection failures are deliberately NOT represented here: per
// the best-effort ingestion contract they are logged and degrade the
// operation, never returned.
var (
	// ErrUnknownTable is returned when a read is requested for a table
	// name outside the fixed schema. Table names are interpolated into
	// SQL as identifiers, so they must come from the known set.
	ErrUnknownTable = errors.New("unknown table: must be one of query_search_results, images_results, related_content")
)
