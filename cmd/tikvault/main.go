// Package main provides the entry point for the tikvault CLI.
//
// tikvault collects heterogeneous TikTok search result payloads, normalizes
// them, and persists them into a local SQLite database for later export and
// analysis.
//
// Usage:
//
//	tikvault ingest <payload.json>
//	tikvault export
//	tikvault links
//
// See --help for all available options.
package main

// main is the entry point for tikvault.
func main() {
	Execute()
}
