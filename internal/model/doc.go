// Package model defines the record types persisted by tikvault.
//
// This package contains the following main types:
//   - RawRecord: a loosely-shaped scraped record as produced by the
//     (external) scraping layer
//   - SearchResult: a normalized organic search result row
//   - ImageResult: a normalized image result row
//   - RelatedContent: a normalized related-content card row
//
// Design decision: Every normalized field is represented as sql.NullString
// and populated through a FromRaw constructor that performs defensive
// lookups. A key that is absent, nil, or not a string in the raw record maps
// to a NULL column value, never a panic or an error. The single deliberate
// exception is author/post-id derivation, which requires a well-formed link
// and surfaces extract.ErrMalformedLink so the caller can isolate the row.
//
// The models live in their own package because the extract, database,
// report, and pipeline packages all need them; centralizing them prevents
// import cycles.
package model
