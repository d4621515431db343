package model

import "database/sql"

// RawRecord is one scraped result as delivered by the scraping layer: a
// string-keyed mapping with heterogeneous, possibly-absent values. Scalar
// fields are strings; snippet_highlighted_words, when present, is a sequence
// of strings (decoded from JSON it arrives as []any).
type RawRecord map[string]any

// stringField returns the value for key as a nullable string.
// Absent keys, nil values, and non-string values all map to NULL.
func (r RawRecord) stringField(key string) sql.NullString {
	v, ok := r[key]
	if !ok || v == nil {
		return sql.NullString{}
	}
	s, ok := v.(string)
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// stringOr returns the value for key as a plain string, or fallback when
// the key is absent or not a string. Used for derivation inputs only; the
// stored value always comes from stringField.
func (r RawRecord) stringOr(key, fallback string) string {
	if s := r.stringField(key); s.Valid {
		return s.String
	}
	return fallback
}

// stringSlice returns the value for key as a slice of strings.
// Both []string and []any (the shape produced by encoding/json) are
// accepted; non-string elements are skipped. Returns nil when the key is
// absent or holds neither shape.
func (r RawRecord) stringSlice(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}

	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
