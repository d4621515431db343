// Package extract provides pure field-derivation functions for scraped
// TikTok search records.
//
// This package contains the following extractors:
//   - LikesComments: pulls engagement counts ("1.2K Likes", "340 Comments")
//     out of free-text snippets
//   - AuthorPostID: derives the author handle, canonical profile URL, and
//     post identifier from a video link's path structure
//
// Design decision: Extractors are pure functions with no I/O and no shared
// state. They are the one place in the codebase where a well-formed input
// shape is required: AuthorPostID validates the link path and returns
// ErrMalformedLink instead of guessing, so that callers (the per-row insert
// loop) can isolate the bad record and keep going. Every other missing or
// malformed field in the system degrades to NULL.
package extract
