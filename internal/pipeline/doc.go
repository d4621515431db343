// Package pipeline orchestrates ingestion of scraped result payloads.
//
// A payload is one JSON document produced by the (external) scraping layer,
// holding up to three batches of raw records: search_results,
// images_results, and related_content. The Ingestor decodes payload files
// concurrently, then feeds the batches to the storage layer sequentially.
//
// Design decision: Decoding is pure CPU work and safe to parallelize with
// errgroup; the inserts stay strictly sequential because the store is
// single-writer by contract. The split keeps multi-file ingests fast
// without weakening the storage model.
package pipeline
