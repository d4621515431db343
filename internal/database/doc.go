// Package database provides SQLite-based storage for tikvault.
//
// This package implements the Store, which persists:
//   - Normalized organic search results (query_search_results)
//   - Normalized image results (images_results)
//   - Related-content cards (related_content)
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for batch ingestion
//
// Unlike a long-lived connection pool, every public operation opens its own
// database handle and closes it before returning. Connection lifetime never
// spans two public calls. This matches the single-writer, best-effort model:
// a batch that dies half-way leaves earlier rows durably committed, and a
// store that cannot be opened degrades the operation to a reported no-op
// instead of an error the caller must handle.
package database
