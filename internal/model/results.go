package model

import (
	"database/sql"
	"strings"

	"github.com/estebanpdl/tikvault/internal/extract"
)

// SearchResult is one normalized organic search result row. Field order
// matches the query_search_results column order.
type SearchResult struct {
	// Source is the originating platform or site of the result.
	Source sql.NullString

	// Title is the result title as scraped.
	Title sql.NullString

	// Snippet is the free-text description shown with the result.
	Snippet sql.NullString

	// Link is the video URL the result points at.
	Link sql.NullString

	// Thumbnail is the preview image URL.
	Thumbnail sql.NullString

	// VideoLink is the direct video URL when the scraper provides one.
	VideoLink sql.NullString

	// SnippetHighlightedWords is the scraper's highlighted terms, flattened
	// to a single ", "-delimited string. NULL when absent or empty.
	SnippetHighlightedWords sql.NullString

	// DisplayedLink is the human-readable link shown on the results page.
	DisplayedLink sql.NullString

	// TitleSnippet is always title + " " + snippet, with empty-string
	// defaults for missing constituents. Never NULL.
	TitleSnippet string

	// Likes is the engagement count matched in the snippet, verbatim
	// (magnitude suffix preserved). NULL when no match.
	Likes sql.NullString

	// Comments is the comment count matched in the snippet, verbatim.
	Comments sql.NullString

	// Author is the author handle derived from Link.
	Author string

	// LinkToAuthor is the canonical profile URL derived from Author.
	LinkToAuthor string

	// PostID is the final path segment of Link.
	PostID string
}

// SearchResultFromRaw normalizes one raw search result record.
//
// All stored fields default to NULL when absent from the raw record. The
// derivation inputs (title, snippet, link) default to the empty string
// instead, so TitleSnippet is always populated. The only failure mode is a
// link that does not carry the expected author/post-id path shape; that
// error is returned for the caller to report and skip.
func SearchResultFromRaw(raw RawRecord) (*SearchResult, error) {
	title := raw.stringOr("title", "")
	snippet := raw.stringOr("snippet", "")
	link := raw.stringOr("link", "")

	likes, comments := extract.LikesComments(snippet)

	author, err := extract.AuthorPostID(link)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Source:                  raw.stringField("source"),
		Title:                   raw.stringField("title"),
		Snippet:                 raw.stringField("snippet"),
		Link:                    raw.stringField("link"),
		Thumbnail:               raw.stringField("thumbnail"),
		VideoLink:               raw.stringField("video_link"),
		SnippetHighlightedWords: joinWords(raw.stringSlice("snippet_highlighted_words")),
		DisplayedLink:           raw.stringField("displayed_link"),
		TitleSnippet:            title + " " + snippet,
		Likes:                   likes,
		Comments:                comments,
		Author:                  author.Author,
		LinkToAuthor:            author.LinkToAuthor,
		PostID:                  author.PostID,
	}, nil
}

// Values returns the column values in query_search_results column order,
// ready for statement binding.
func (s *SearchResult) Values() []any {
	return []any{
		s.Source, s.Title, s.Snippet, s.Link, s.Thumbnail, s.VideoLink,
		s.SnippetHighlightedWords, s.DisplayedLink, s.TitleSnippet,
		s.Likes, s.Comments, s.Author, s.LinkToAuthor, s.PostID,
	}
}

// ImageResult is one normalized image result row. Field order matches the
// images_results column order.
type ImageResult struct {
	Source    sql.NullString
	Title     sql.NullString
	Link      sql.NullString
	Thumbnail sql.NullString

	// Author, LinkToAuthor, and PostID are derived from Link the same way
	// as for SearchResult.
	Author       string
	LinkToAuthor string
	PostID       string
}

// ImageResultFromRaw normalizes one raw image result record.
func ImageResultFromRaw(raw RawRecord) (*ImageResult, error) {
	author, err := extract.AuthorPostID(raw.stringOr("link", ""))
	if err != nil {
		return nil, err
	}

	return &ImageResult{
		Source:       raw.stringField("source"),
		Title:        raw.stringField("title"),
		Link:         raw.stringField("link"),
		Thumbnail:    raw.stringField("thumbnail"),
		Author:       author.Author,
		LinkToAuthor: author.LinkToAuthor,
		PostID:       author.PostID,
	}, nil
}

// Values returns the column values in images_results column order.
func (i *ImageResult) Values() []any {
	return []any{
		i.Source, i.Title, i.Link, i.Thumbnail,
		i.Author, i.LinkToAuthor, i.PostID,
	}
}

// RelatedContent is one normalized related-content card row. Field order
// matches the related_content column order.
type RelatedContent struct {
	Source    sql.NullString
	Link      sql.NullString
	Thumbnail sql.NullString
	Title     sql.NullString
}

// RelatedContentFromRaw normalizes one raw related-content record.
// This is a pure pass-through; no fields are derived and no shape is
// required, so it cannot fail.
func RelatedContentFromRaw(raw RawRecord) *RelatedContent {
	return &RelatedContent{
		Source:    raw.stringField("source"),
		Link:      raw.stringField("link"),
		Thumbnail: raw.stringField("thumbnail"),
		Title:     raw.stringField("title"),
	}
}

// Values returns the column values in related_content column order.
func (r *RelatedContent) Values() []any {
	return []any{r.Source, r.Link, r.Thumbnail, r.Title}
}

// joinWords flattens a highlighted-words sequence to a single delimited
// string. Empty or absent sequences map to NULL, matching the behavior of
// every other optional column.
func joinWords(words []string) sql.NullString {
	if len(words) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(words, ", "), Valid: true}
}
